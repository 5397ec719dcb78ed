package teamleader

import (
	"context"
	"log/slog"
	"net/http"

	"teamgate/internal/http/api"
	"teamgate/internal/http/handlers"
	mw "teamgate/internal/http/middleware"
	"teamgate/internal/lib/sl"
	"teamgate/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type teamService interface {
	Create(ctx context.Context, leaderID, name, avatarURL string) (*models.Team, error)
	Update(ctx context.Context, actingUserID, teamID, name, avatarURL string) (*models.Team, error)
	RemoveMember(ctx context.Context, actingUserID, teamID, userID string) error
}

type invitationService interface {
	Create(ctx context.Context, teamID, email, actingUserID string) (*models.Invitation, error)
	ListByTeam(ctx context.Context, teamID, actingUserID string) ([]*models.Invitation, error)
}

// TeamLeaderHandler serves the /team-leader surface. Every route sits behind
// the session gate; leadership itself is checked in the services.
type TeamLeaderHandler struct {
	log         *slog.Logger
	teams       teamService
	invitations invitationService
}

func NewTeamLeaderHandler(log *slog.Logger, teams teamService, invitations invitationService) *TeamLeaderHandler {
	return &TeamLeaderHandler{
		log:         log,
		teams:       teams,
		invitations: invitations,
	}
}

type CreateTeamRequest struct {
	Name      string `json:"name" validate:"required,max=64"`
	AvatarURL string `json:"avatarUrl"`
}

func (h *TeamLeaderHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teamleader.CreateTeam"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input CreateTeamRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := mw.UserFromContext(r.Context())

	team, err := h.teams.Create(r.Context(), user.ID, input.Name, input.AvatarURL)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	log.Info("team created", slog.String("team_id", team.ID), slog.String("slug", team.Slug))
	render.JSON(w, r, api.TeamResponse{Team: api.NewTeamSchema(team)})
}

type UpdateTeamRequest struct {
	TeamID    string `json:"teamId" validate:"required"`
	Name      string `json:"name" validate:"required,max=64"`
	AvatarURL string `json:"avatarUrl"`
}

func (h *TeamLeaderHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teamleader.UpdateTeam"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input UpdateTeamRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := mw.UserFromContext(r.Context())

	team, err := h.teams.Update(r.Context(), user.ID, input.TeamID, input.Name, input.AvatarURL)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	render.JSON(w, r, api.TeamResponse{Team: api.NewTeamSchema(team)})
}

type InviteMemberRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

func (h *TeamLeaderHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teamleader.InviteMember"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input InviteMemberRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := mw.UserFromContext(r.Context())

	inv, err := h.invitations.Create(r.Context(), input.TeamID, input.Email, user.ID)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	log.Info("invitation created", slog.String("team_id", input.TeamID))
	render.JSON(w, r, api.NewInvitationResponse{NewInvitation: api.NewInvitationSchema(inv)})
}

type RemoveMemberRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

func (h *TeamLeaderHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teamleader.RemoveMember"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input RemoveMemberRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := mw.UserFromContext(r.Context())

	if err := h.teams.RemoveMember(r.Context(), user.ID, input.TeamID, input.UserID); err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	log.Info("member removed", slog.String("team_id", input.TeamID), slog.String("user_id", input.UserID))
	render.JSON(w, r, api.DoneResponse{Done: 1})
}

func (h *TeamLeaderHandler) GetInvitations(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teamleader.GetInvitations"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		render.JSON(w, r, api.Error("teamId is required"))
		return
	}

	user := mw.UserFromContext(r.Context())

	invs, err := h.invitations.ListByTeam(r.Context(), teamID, user.ID)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	render.JSON(w, r, api.InvitationsResponse{Invitations: api.NewInvitationSchemas(invs)})
}
