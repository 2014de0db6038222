// Package server exposes the lead pipeline over HTTP. Every response,
// success or failure, is a JSON envelope.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/pipeline"
)

// Server hosts the lead search API.
type Server struct {
	cfg    *config.Config
	pipe   *pipeline.Pipeline
	router chi.Router
}

// New builds a Server around a configured pipeline.
func New(cfg *config.Config, pipe *pipeline.Pipeline) *Server {
	s := &Server{cfg: cfg, pipe: pipe}
	s.router = s.buildRouter()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.Server.AllowAllCORS {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/search-leads", s.handleSearchLeads)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipe.Health())
}

func (s *Server) handleSearchLeads(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := zap.L().With(zap.String("request_id", requestID))

	var icp model.ICP
	if err := json.NewDecoder(r.Body).Decode(&icp); err != nil {
		env := model.NewFailureEnvelope(pipeline.CodeInvalidRequest, "request body is not a valid profile")
		env.RequestID = requestID
		writeJSON(w, http.StatusBadRequest, env)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(),
		time.Duration(s.cfg.Pipeline.RequestTimeoutSecs)*time.Second)
	defer cancel()

	env, err := s.pipe.Run(ctx, icp)
	if err != nil {
		code := pipeline.Classify(err)
		log.Error("lead search failed",
			zap.String("error_code", code),
			zap.Error(err))
		fail := model.NewFailureEnvelope(code, publicMessage(code))
		fail.ICPName = icp.Name
		fail.RequestID = requestID
		writeJSON(w, pipeline.HTTPStatus(code), fail)
		return
	}

	env.RequestID = requestID
	log.Info("lead search served", zap.Int("total_leads", env.TotalLeads))
	writeJSON(w, http.StatusOK, env)
}

// publicMessage keeps internal error detail out of responses.
func publicMessage(code string) string {
	switch code {
	case pipeline.CodeInvalidRequest:
		return "the supplied profile is invalid"
	case pipeline.CodeConfigurationError:
		return "a required backend credential is not configured"
	case pipeline.CodeRetrievalExhausted:
		return "no search results could be retrieved for this profile"
	case pipeline.CodeTimeout:
		return "the lead search did not complete in time"
	default:
		return "an internal error occurred"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}
