package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/awoyaledolapo/clytix-1/internal/config"
	"github.com/awoyaledolapo/clytix-1/internal/handlers"
	"github.com/awoyaledolapo/clytix-1/internal/middleware"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
	"github.com/awoyaledolapo/clytix-1/internal/service"
	"github.com/awoyaledolapo/clytix-1/internal/tickets"
)

// Deps are the stores the router wires handlers onto. main selects the
// Postgres or in-memory implementations.
type Deps struct {
	Tickets repository.TicketStore
	Users   repository.UserStore
}

func New(log zerolog.Logger, deps Deps, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	r.Get("/healthz", handlers.Health())

	sessions := tickets.NewRegistry(deps.Tickets, log)
	authSvc := service.NewAuthService(deps.Users, cfg.SessionSecret)

	ah := handlers.NewAuthHTTP(authSvc, deps.Users, sessions)
	sh := handlers.NewSessionHTTP(sessions)
	dh := handlers.NewDashboardHTTP(deps.Tickets)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/session", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", sh.Get())
		r.Post("/reload", sh.Reload())
		r.Put("/draft", sh.SetDraft())
		r.Post("/submit", sh.Submit())
		r.Route("/form", func(r chi.Router) {
			r.Post("/new", sh.FormNew())
			r.Post("/edit/{id}", sh.FormEdit())
			r.Post("/cancel", sh.FormCancel())
		})
		r.Route("/delete", func(r chi.Router) {
			r.Post("/confirm", sh.ConfirmDelete())
			r.Post("/cancel", sh.CancelDelete())
			r.Post("/{id}", sh.RequestDelete())
		})
	})

	r.With(middleware.RequireAuth).Get("/api/dashboard", dh.Summary())

	return r
}
