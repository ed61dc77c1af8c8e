package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/homecare-ojt/ltcsim/internal/breakeven"
	"github.com/homecare-ojt/ltcsim/internal/compare"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/sequencing"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

// SimulateResponse is the body returned by POST /api/simulate
type SimulateResponse struct {
	Lines           []domain.LineOutcome    `json:"lines"`
	Aggregate       domain.Aggregate        `json:"aggregate"`
	Issues          []domain.Issue          `json:"issues,omitempty"`
	Recommendations []domain.Recommendation `json:"recommendations,omitempty"`
}

// CompareRequest is the body accepted by POST /api/compare
type CompareRequest struct {
	Worksheet  domain.Worksheet `json:"worksheet"`
	Templates  []string         `json:"templates"`
	Transforms []string         `json:"transforms,omitempty"`
}

// FitRequest is the body accepted by POST /api/fit. An empty ServiceID
// solves every catalog service.
type FitRequest struct {
	Worksheet   domain.Worksheet      `json:"worksheet"`
	Target      string                `json:"target,omitempty"`
	Constraints breakeven.Constraints `json:"constraints"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTariff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.calc.Tariff)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var ws domain.Worksheet
	if !s.decodeWorksheet(w, r, &ws) {
		return
	}

	result, err := s.calc.Simulate(r.Context(), ws)
	if err != nil {
		s.log.Error("simulation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		Lines:           result.Lines,
		Aggregate:       result.Aggregate,
		Issues:          result.Issues,
		Recommendations: s.calc.Recommend(ws, result),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Templates) == 0 && len(req.Transforms) == 0 {
		writeError(w, http.StatusBadRequest, "At least one template or transform is required")
		return
	}
	if !s.validWorksheet(w, &req.Worksheet) {
		return
	}

	set, err := s.compare.Compare(r.Context(), req.Worksheet, compare.Options{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.validWorksheet(w, &req.Worksheet) {
		return
	}

	solveReq := breakeven.Request{Worksheet: req.Worksheet, Target: target, Constraints: req.Constraints}
	if req.Constraints.ServiceID != "" {
		result, err := s.solver.Solve(r.Context(), solveReq)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	mr, err := s.solver.SolveServices(r.Context(), solveReq, nil)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mr)
}

// ReduceRequest is the body accepted by POST /api/reduce
type ReduceRequest struct {
	Worksheet domain.Worksheet  `json:"worksheet"`
	Strategy  string            `json:"strategy"`
	Order     []domain.Category `json:"order,omitempty"`
	Buffer    domain.Won        `json:"buffer"`
}

func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req ReduceRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Strategy == "" {
		req.Strategy = sequencing.StrategyLargestSaving
	}
	strategy, err := sequencing.CreateStrategy(req.Strategy, req.Order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Buffer < 0 {
		writeError(w, http.StatusBadRequest, "buffer cannot be negative")
		return
	}
	if !s.validWorksheet(w, &req.Worksheet) {
		return
	}

	outcome, err := s.reducer.Reduce(r.Context(), req.Worksheet, strategy, req.Buffer)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	if s.sims == nil {
		writeError(w, http.StatusServiceUnavailable, "Simulation store is not configured")
		return
	}
	sims, err := s.sims.ListSimulations(r.Context())
	if err != nil {
		s.log.Error("list simulations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sims == nil {
		sims = []domain.SavedSimulation{}
	}
	writeJSON(w, http.StatusOK, sims)
}

func (s *Server) handleSaveSimulation(w http.ResponseWriter, r *http.Request) {
	if s.sims == nil {
		writeError(w, http.StatusServiceUnavailable, "Simulation store is not configured")
		return
	}
	var ws domain.Worksheet
	if !s.decodeWorksheet(w, r, &ws) {
		return
	}

	result, err := s.calc.Simulate(r.Context(), ws)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rec := store.NewSavedSimulation(ws, result, s.now())
	if err := s.sims.SaveSimulation(r.Context(), rec); err != nil {
		s.log.Error("save simulation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("simulation saved", zap.String("id", rec.ID), zap.String("customer", rec.CustomerName))
	writeJSON(w, http.StatusCreated, rec)
}
