package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	adminh "teamgate/internal/http/handlers/admin"
	publich "teamgate/internal/http/handlers/public"
	teamleaderh "teamgate/internal/http/handlers/teamleader"

	"teamgate/internal/http/handlers"
	mw "teamgate/internal/http/middleware"
	"teamgate/internal/lib/config"
	"teamgate/internal/lib/sl"
	"teamgate/internal/mail"
	repo "teamgate/internal/repository"
	"teamgate/internal/service/auth"
	"teamgate/internal/service/invitation"
	"teamgate/internal/service/maintenance"
	"teamgate/internal/service/team"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/oauth2"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("Starting Team Membership Service", slog.String("env", cfg.Env))

	dsn := os.Getenv("DATABASE_URL")
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		slog.Error("failed to establish connection with database", sl.Err(err))
		os.Exit(1)
	}

	if err := runMigrations(dsn); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	// initialization of go-transaction-manager
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))

	userRepo := repo.NewUserRepo(db, trmsqlx.DefaultCtxGetter)
	teamRepo := repo.NewTeamRepo(db, trmsqlx.DefaultCtxGetter)
	invitationRepo := repo.NewInvitationRepo(db, trmsqlx.DefaultCtxGetter)
	sessionRepo := repo.NewSessionRepo(db, trmsqlx.DefaultCtxGetter)
	loginTokenRepo := repo.NewLoginTokenRepo(db, trmsqlx.DefaultCtxGetter)

	strategy, err := buildStrategy(cfg, log, userRepo, loginTokenRepo)
	if err != nil {
		log.Error("failed to build auth strategy", sl.Err(err))
		os.Exit(1)
	}
	log.Info("auth strategy selected", slog.String("strategy", strategy.Name()))

	authService := auth.NewAuthService(trManager, sessionRepo, userRepo, strategy, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	})
	teamService := team.NewTeamService(trManager, log, teamRepo, invitationRepo)
	invitationService := invitation.NewInvitationService(trManager, teamRepo, invitationRepo)
	maintenanceService := maintenance.NewMaintenanceService(
		log,
		invitationRepo,
		sessionRepo,
		loginTokenRepo,
		teamService,
		cfg.Sweep.InvitationRetention,
		cfg.Sweep.TeamRetention,
	)

	publicHandler := publich.NewPublicHandler(log, authService, invitationService, teamService, cfg.Session.CookieName)
	teamLeaderHandler := teamleaderh.NewTeamLeaderHandler(log, teamService, invitationService)
	adminHandler := adminh.NewAdminHandler(log, maintenanceService)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mw.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mw.Principal(log, authService, cfg.Session.CookieName))
	log.Info("starting http server", slog.String("address", cfg.HTTPServer.Address))

	router.Get("/health", handlers.Healthcheck())

	// public methods: anonymous allowed, session used when present
	router.Route("/public", func(r chi.Router) {
		r.Get("/get-user", publicHandler.GetUser)
		r.Get("/invitations/accept-and-get-team-by-token", publicHandler.AcceptInvitation)
		r.Get("/teams/get-team-by-slug", publicHandler.GetTeamBySlug)
		r.Post("/invitations/remove-invitation-if-member-added", publicHandler.FinalizeInvitation)
		r.Post("/auth/email-login", publicHandler.EmailLogin)
		r.Get("/auth/email-login/callback", publicHandler.EmailLoginCallback)
		r.Get("/auth/oauth", publicHandler.OAuthLogin)
		r.Get("/auth/oauth/callback", publicHandler.OAuthCallback)
		r.Post("/auth/logout", publicHandler.Logout)
	})

	// team leader methods
	router.Route("/team-leader", func(r chi.Router) {
		r.Use(mw.RequireSession)

		r.Post("/teams/create", teamLeaderHandler.CreateTeam)
		r.Post("/teams/update", teamLeaderHandler.UpdateTeam)
		r.Post("/teams/invite-member", teamLeaderHandler.InviteMember)
		r.Post("/teams/remove-member", teamLeaderHandler.RemoveMember)
		r.Get("/teams/get-invitations-for-team", teamLeaderHandler.GetInvitations)
	})

	// admin methods
	router.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireSession)
		r.Use(mw.AdminOnly)

		r.Get("/teams/remove-old-data", adminHandler.RemoveOldData)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start http server", sl.Err(err))
		os.Exit(1)
	}

	log.Error("http server stopped")
}

func buildStrategy(
	cfg *config.Config,
	log *slog.Logger,
	userRepo *repo.UserRepo,
	loginTokenRepo *repo.LoginTokenRepo,
) (auth.Strategy, error) {
	switch cfg.Auth.Strategy {
	case "email-link":
		return auth.NewEmailLinkStrategy(
			loginTokenRepo,
			mail.NewLogMailer(log),
			userRepo,
			cfg.Auth.LoginTokenTTL,
			cfg.Auth.LoginLinkBase,
		), nil
	case "oauth":
		return auth.NewOAuthStrategy(&oauth2.Config{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			RedirectURL:  cfg.Auth.OAuth.RedirectURL,
			Scopes:       cfg.Auth.OAuth.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.Auth.OAuth.AuthURL,
				TokenURL: cfg.Auth.OAuth.TokenURL,
			},
		}, cfg.Auth.OAuth.UserInfoURL, userRepo), nil
	default:
		return nil, errors.New("unknown auth strategy: " + cfg.Auth.Strategy)
	}
}

func runMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
