// Package server exposes the simulation engine over a JSON HTTP API
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/homecare-ojt/ltcsim/internal/breakeven"
	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/compare"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/sequencing"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

const maxBodyBytes = 1 << 20

// Server handles API requests. Simulations are stateless; only the
// /api/simulations endpoints touch the store.
type Server struct {
	calc     *calculation.Engine
	compare  *compare.Engine
	solver   *breakeven.Solver
	reducer  *sequencing.Reducer
	sims     store.SimulationStore
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a server. sims may be nil, in which case the saved-simulation
// endpoints answer 503.
func New(calc *calculation.Engine, sims store.SimulationStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		calc:     calc,
		compare:  compare.NewEngine(calc),
		solver:   breakeven.NewDefaultSolver(calc),
		reducer:  sequencing.NewReducer(calc),
		sims:     sims,
		log:      log,
		validate: config.NewValidator("json"),
		now:      time.Now,
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tariff", s.handleTariff)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/compare", s.handleCompare)
		r.Post("/fit", s.handleFit)
		r.Post("/reduce", s.handleReduce)
		r.Get("/simulations", s.handleListSimulations)
		r.Post("/simulations", s.handleSaveSimulation)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}

func readBodyJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}
	return json.Unmarshal(body, out)
}

// decodeWorksheet reads and validates a worksheet body, writing the error
// response itself when it fails
func (s *Server) decodeWorksheet(w http.ResponseWriter, r *http.Request, ws *domain.Worksheet) bool {
	if err := readBodyJSON(r, ws); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return s.validWorksheet(w, ws)
}

func (s *Server) validWorksheet(w http.ResponseWriter, ws *domain.Worksheet) bool {
	if err := s.validate.Struct(ws.Normalize()); err != nil {
		writeError(w, http.StatusUnprocessableEntity, config.DescribeValidation(err).Error())
		return false
	}
	return true
}
