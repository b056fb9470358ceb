package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huddle-lab/standup/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// Server routes Slack webhook traffic to the command and interaction
// handlers. Both are protected by signature verification; there is no other
// authentication surface.
type Server struct {
	router             *chi.Mux
	commandHandler     http.Handler
	interactionHandler http.Handler
	signingSecret      string
}

type Option func(*Server)

// WithCommandHandler sets the slash command handler
func WithCommandHandler(h http.Handler) Option {
	return func(s *Server) {
		s.commandHandler = h
	}
}

// WithInteractionHandler sets the modal submission handler
func WithInteractionHandler(h http.Handler) Option {
	return func(s *Server) {
		s.interactionHandler = h
	}
}

func New(signingSecret string, opts ...Option) (*Server, error) {
	if signingSecret == "" {
		return nil, goerr.New("slack signing secret is required")
	}

	s := &Server{
		router:        chi.NewRouter(),
		signingSecret: signingSecret,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.commandHandler == nil || s.interactionHandler == nil {
		return nil, goerr.New("command and interaction handlers are required")
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/hooks/slack", func(r chi.Router) {
		r.Use(SlackSignatureMiddleware(s.signingSecret))
		r.Post("/command", s.commandHandler.ServeHTTP)
		r.Post("/interaction", s.interactionHandler.ServeHTTP)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
