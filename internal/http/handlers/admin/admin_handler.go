package admin

import (
	"context"
	"log/slog"
	"net/http"

	"teamgate/internal/http/api"
	"teamgate/internal/http/handlers"
	"teamgate/internal/service/maintenance"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type maintenanceService interface {
	RemoveOldData(ctx context.Context) (*maintenance.Summary, error)
}

type AdminHandler struct {
	log         *slog.Logger
	maintenance maintenanceService
}

func NewAdminHandler(log *slog.Logger, maintenance maintenanceService) *AdminHandler {
	return &AdminHandler{
		log:         log,
		maintenance: maintenance,
	}
}

// RemoveOldData triggers the maintenance sweep and reports what it removed.
// A partially failed sweep still returns its summary: every step is
// idempotent and the next run picks up the remainder.
func (h *AdminHandler) RemoveOldData(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.RemoveOldData"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.maintenance.RemoveOldData(r.Context())
	if err != nil && summary == nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	log.Info("maintenance sweep completed",
		slog.Int64("invitations_removed", summary.InvitationsRemoved),
		slog.Int64("sessions_removed", summary.SessionsRemoved),
		slog.Int64("login_tokens_removed", summary.LoginTokensRemoved),
		slog.Int("teams_removed", summary.TeamsRemoved),
	)

	render.JSON(w, r, api.SweepSummaryResponse{
		InvitationsRemoved: summary.InvitationsRemoved,
		SessionsRemoved:    summary.SessionsRemoved,
		LoginTokensRemoved: summary.LoginTokensRemoved,
		TeamsRemoved:       summary.TeamsRemoved,
	})
}
