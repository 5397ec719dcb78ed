package main

import (
	"log/slog"
	"net/http"
	"os"

	"teamgate/internal/bridge"
	"teamgate/internal/http/api"
	mw "teamgate/internal/http/middleware"
	"teamgate/internal/lib/config"
	"teamgate/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
)

// The gateway is the rendering tier's process. Page rendering itself lives
// elsewhere; this binary carries the session propagation bridge and shows
// the one pattern every identity-aware route must follow.
func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	log.Info("Starting Rendering Gateway",
		slog.String("address", cfg.Gateway.Address),
		slog.String("api_base_url", cfg.Gateway.APIBaseURL),
	)

	resolver := bridge.NewResolver(cfg.Gateway.APIBaseURL, cfg.Gateway.ResolveTimeout)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(mw.New(log))
	router.Use(middleware.Recoverer)
	router.Use(resolver.Middleware(log))

	router.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		p := bridge.FromContext(r.Context())
		render.JSON(w, r, api.UserResponse{User: p.User})
	})

	srv := &http.Server{
		Addr:         cfg.Gateway.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start http server", sl.Err(err))
		os.Exit(1)
	}
}
