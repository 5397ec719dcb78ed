package public

import (
	"context"
	"log/slog"
	"net/http"

	"teamgate/internal/http/api"
	"teamgate/internal/http/handlers"
	mw "teamgate/internal/http/middleware"
	"teamgate/internal/lib/sl"
	"teamgate/internal/models"
	"teamgate/internal/slug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type authService interface {
	InitiateEmailLogin(ctx context.Context, email string) error
	CompleteLogin(ctx context.Context, credential string) (*models.User, *http.Cookie, error)
	OAuthURL(state string) (string, error)
	Logout(ctx context.Context, cookieValue string) (*http.Cookie, error)
}

type invitationService interface {
	Redeem(ctx context.Context, token string, currentUser *models.User) (*models.Team, error)
	Finalize(ctx context.Context, token, userID string) (*models.Team, error)
}

type teamReader interface {
	GetBySlug(ctx context.Context, teamSlug string) (*models.Team, []*models.User, error)
}

const oauthStateCookie = "teamgate_oauth_state"

type PublicHandler struct {
	log         *slog.Logger
	auth        authService
	invitations invitationService
	teams       teamReader
	cookieName  string
}

func NewPublicHandler(log *slog.Logger, auth authService, invitations invitationService, teams teamReader, cookieName string) *PublicHandler {
	return &PublicHandler{
		log:         log,
		auth:        auth,
		invitations: invitations,
		teams:       teams,
		cookieName:  cookieName,
	}
}

// GetUser reports the principal behind the session cookie, null when
// anonymous. This is also the endpoint the rendering tier calls on every
// request through the propagation bridge.
func (h *PublicHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := mw.UserFromContext(r.Context())

	resp := api.UserResponse{}
	if user != nil {
		schema := api.NewUserSchema(user)
		resp.User = &schema
	}

	render.JSON(w, r, resp)
}

// AcceptInvitation resolves an invitation token to its team so the landing
// page can be rendered before login; with a session present it also applies
// the membership side effect, idempotently.
func (h *PublicHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.AcceptInvitation"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		render.JSON(w, r, api.Error("token is required"))
		return
	}

	team, err := h.invitations.Redeem(r.Context(), token, mw.UserFromContext(r.Context()))
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	render.JSON(w, r, api.TeamResponse{Team: api.NewTeamSchema(team)})
}

// GetTeamBySlug backs the public team page. Slugs are the only identifier
// exposed in URLs, so lookups here never take a raw team id.
func (h *PublicHandler) GetTeamBySlug(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.GetTeamBySlug"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	teamSlug := r.URL.Query().Get("slug")
	if teamSlug == "" {
		render.JSON(w, r, api.Error("slug is required"))
		return
	}

	team, members, err := h.teams.GetBySlug(r.Context(), teamSlug)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	schema := api.NewTeamSchema(team)
	schema.Members = api.NewUserSchemas(members)
	render.JSON(w, r, api.TeamResponse{Team: schema})
}

type FinalizeInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// FinalizeInvitation retires a redeemed invitation once membership has been
// confirmed applied. Repeating the call is a no-op returning the same team.
func (h *PublicHandler) FinalizeInvitation(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.FinalizeInvitation"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input FinalizeInvitationRequest
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

	var userID string
	if user := mw.UserFromContext(r.Context()); user != nil {
		userID = user.ID
	}

	team, err := h.invitations.Finalize(r.Context(), input.Token, userID)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	render.JSON(w, r, api.TeamResponse{Team: api.NewTeamSchema(team)})
}

type EmailLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *PublicHandler) EmailLogin(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.EmailLogin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var input EmailLoginRequest
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

	if err := h.auth.InitiateEmailLogin(r.Context(), input.Email); err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	log.Info("login link dispatched")
	render.JSON(w, r, api.DoneResponse{Done: 1})
}

// EmailLoginCallback redeems the emailed token and sets the session cookie.
func (h *PublicHandler) EmailLoginCallback(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.EmailLoginCallback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		render.JSON(w, r, api.Error("token is required"))
		return
	}

	user, cookie, err := h.auth.CompleteLogin(r.Context(), token)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	http.SetCookie(w, cookie)

	log.Info("session established", slog.String("user_id", user.ID))
	schema := api.NewUserSchema(user)
	render.JSON(w, r, api.UserResponse{User: &schema})
}

// OAuthLogin redirects to the identity provider with a CSRF state bound to
// the browser via a short-lived cookie.
func (h *PublicHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.OAuthLogin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state, err := slug.Opaque(16)
	if err != nil {
		log.Error("failed to generate oauth state", sl.Err(err))
		render.JSON(w, r, api.InternalError())
		return
	}

	url, err := h.auth.OAuthURL(state)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *PublicHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.OAuthCallback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		render.JSON(w, r, api.Error("invalid oauth state"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		render.JSON(w, r, api.Error("code is required"))
		return
	}

	user, cookie, err := h.auth.CompleteLogin(r.Context(), code)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	http.SetCookie(w, cookie)

	log.Info("session established", slog.String("user_id", user.ID))
	schema := api.NewUserSchema(user)
	render.JSON(w, r, api.UserResponse{User: &schema})
}

func (h *PublicHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.Logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var cookieValue string
	if c, err := r.Cookie(h.cookieName); err == nil {
		cookieValue = c.Value
	}

	expired, err := h.auth.Logout(r.Context(), cookieValue)
	if err != nil {
		handlers.RenderBusinessError(w, r, log, err)
		return
	}

	http.SetCookie(w, expired)
	render.JSON(w, r, api.DoneResponse{Done: 1})
}
