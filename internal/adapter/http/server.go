package http

import (
	"net/http"

	"github.com/bnema/mediaconv/internal/adapter/http/middleware"
)

type Server struct {
	mux      *http.ServeMux
	handlers *Handlers
	handler  http.Handler
}

func NewServer(svc ConversionService, maxUploadBytes int64) *Server {
	mux := http.NewServeMux()
	s := &Server{
		mux:      mux,
		handlers: NewHandlers(svc, maxUploadBytes),
		handler:  middleware.SecurityHeaders(mux),
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handlers.Index())

	s.mux.HandleFunc("POST /api/convert", s.handlers.Convert())
	s.mux.HandleFunc("GET /api/strategies", s.handlers.Strategies())
	s.mux.HandleFunc("GET /api/conversions", s.handlers.Conversions())
	s.mux.HandleFunc("GET /api/conversions/{id}", s.handlers.Conversion())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
