// Package http exposes the phonebook REST API: session-cookie auth plus CRUD
// endpoints for contacts, companies, notices, and users. Every response is a
// JSON envelope with a success flag; failures add an error message.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/phonebook/internal/logging"
	"github.com/dmitrijs2005/phonebook/internal/server/config"
	"github.com/dmitrijs2005/phonebook/internal/server/store"
)

type Server struct {
	cfg    *config.Config
	store  store.Manager
	logger logging.Logger
}

func NewServer(cfg *config.Config, st store.Manager, logger logging.Logger) *Server {
	return &Server{cfg: cfg, store: st, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.sessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/status", s.handleStatus)

		r.Route("/contacts", func(r chi.Router) {
			r.With(s.requireAuth).Get("/", s.handleListContacts)
			r.With(s.requireEditor).Post("/", s.handleCreateContact)
			r.With(s.requireAuth).Put("/{id}", s.handleUpdateContact)
			r.With(s.requireAuth).Delete("/{id}", s.handleDeleteContact)
		})

		r.Route("/companies", func(r chi.Router) {
			r.With(s.requireAuth).Get("/", s.handleListCompanies)
			r.With(s.requireEditor).Post("/", s.handleCreateCompany)
			r.With(s.requireEditor).Put("/{id}", s.handleUpdateCompany)
			r.With(s.requireEditor).Delete("/{id}", s.handleDeleteCompany)
		})

		r.Route("/notices", func(r chi.Router) {
			r.With(s.requireAuth).Get("/", s.handleListNotices)
			r.With(s.requireEditor).Post("/", s.handleCreateNotice)
			r.With(s.requireEditor).Put("/{id}", s.handleUpdateNotice)
			r.With(s.requireEditor).Delete("/{id}", s.handleDeleteNotice)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireAdmin).Get("/", s.handleListUsers)
			// POST is open so the very first admin can be bootstrapped;
			// the handler enforces authorization for everything else.
			r.Post("/", s.handleCreateUser)
			r.With(s.requireAdmin).Put("/{id}", s.handleUpdateUser)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteUser)
		})
	})

	return r
}
