package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homecare-ojt/ltcsim/internal/breakeven"
	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/compare"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/sequencing"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

const worksheetBody = `{
  "customerName": "홍길동",
  "careGradeId": "grade3",
  "defaultBurdenTierId": "normal",
  "lines": [
    {"serviceId": "visit-1", "quantity": 2},
    {"serviceId": "ghost", "quantity": 1}
  ]
}`

func newTestServer(t *testing.T, sims store.SimulationStore) *Server {
	t.Helper()
	tariff, err := config.NewTariffParser().LoadDefault()
	require.NoError(t, err)
	srv := New(calculation.NewEngine(tariff), sims, zap.NewNop())
	srv.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestServer(t, nil).Routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestTariff(t *testing.T) {
	rr := do(t, newTestServer(t, nil).Routes(), http.MethodGet, "/api/tariff", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var tariff domain.Tariff
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tariff))
	assert.Equal(t, 2025, tariff.Metadata.Year)
	assert.NotEmpty(t, tariff.Services)
}

func TestSimulate(t *testing.T) {
	rr := do(t, newTestServer(t, nil).Routes(), http.MethodPost, "/api/simulate", worksheetBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var resp SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 2)
	assert.NotNil(t, resp.Lines[0].Result)
	assert.Equal(t, `unknown service: "ghost"`, resp.Lines[1].Error)
	assert.Equal(t, domain.Won(17000), resp.Aggregate.TotalCost)
	assert.Equal(t, domain.Won(2550), resp.Aggregate.TotalUserBurden)
	assert.Equal(t, domain.Won(14450), resp.Aggregate.TotalInsuranceCoverage)
	require.NotEmpty(t, resp.Issues)
	assert.Equal(t, domain.IssueUnknownService, resp.Issues[0].Kind)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestSimulate_BadRequests(t *testing.T) {
	h := newTestServer(t, nil).Routes()

	rr := do(t, h, http.MethodPost, "/api/simulate", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/simulate", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/simulate", `{"careGradeId":"grade1","defaultBurdenTierId":"normal","lines":[{"serviceId":"visit-1","quantity":0}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "lines[0].quantity must be at least 1")

	rr = do(t, h, http.MethodPost, "/api/simulate", `{"defaultBurdenTierId":"normal","lines":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "careGradeId is required")
}

func TestCompare(t *testing.T) {
	h := newTestServer(t, nil).Routes()
	body := `{"worksheet":` + worksheetBody + `,"templates":["tier_medical_aid"]}`

	rr := do(t, h, http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var set compare.ComparisonSet
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &set))
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, domain.Won(0), set.AlternativeResults[0].UserBurden)
	assert.Equal(t, domain.Won(-2550), set.AlternativeResults[0].BurdenDiffFromBase)

	rr = do(t, h, http.MethodPost, "/api/compare", `{"worksheet":`+worksheetBody+`}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/compare", `{"worksheet":`+worksheetBody+`,"templates":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFit(t *testing.T) {
	h := newTestServer(t, nil).Routes()
	body := `{"worksheet":` + worksheetBody + `,"target":"burden","constraints":{"service_id":"visit-2","budget":10000}}`

	rr := do(t, h, http.MethodPost, "/api/fit", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result breakeven.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Feasible)
	assert.Equal(t, 11, result.Quantity)
	assert.Equal(t, domain.Won(9975), result.UserBurden)
	assert.Equal(t, domain.Won(25), result.Headroom)

	rr = do(t, h, http.MethodPost, "/api/fit", `{"worksheet":`+worksheetBody+`,"target":"cheapest"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/fit", `{"worksheet":`+worksheetBody+`,"target":"cost","constraints":{"service_id":"visit-2"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	lineTiers := `{"careGradeId":"grade5","lines":[{"serviceId":"visit-1","quantity":1,"burdenTierId":"normal"}]}`
	rr = do(t, h, http.MethodPost, "/api/fit", `{"worksheet":`+lineTiers+`,"constraints":{"service_id":"shortstay-3"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown burden tier")
}

func TestReduce(t *testing.T) {
	h := newTestServer(t, nil).Routes()
	over := `{"careGradeId":"grade5","defaultBurdenTierId":"normal","lines":[` +
		`{"serviceId":"daycare-1","quantity":25},{"serviceId":"shortstay-1","quantity":10}]}`

	rr := do(t, h, http.MethodPost, "/api/reduce", `{"worksheet":`+over+`,"strategy":"overage_first"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var outcome sequencing.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	require.Len(t, outcome.Plan.Steps, 1)
	assert.Equal(t, "daycare-1", outcome.Plan.Steps[0].ServiceID)
	assert.Equal(t, 24, outcome.Plan.Steps[0].ToQuantity)
	assert.Equal(t, domain.Won(1070000), outcome.After.Aggregate.TotalCost)
	assert.False(t, outcome.After.Aggregate.IsOverMonthlyLimit)

	rr = do(t, h, http.MethodPost, "/api/reduce", `{"worksheet":`+over+`,"strategy":"cheapest"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	noLimit := `{"careGradeId":"grade9","defaultBurdenTierId":"normal","lines":[{"serviceId":"visit-1","quantity":1}]}`
	rr = do(t, h, http.MethodPost, "/api/reduce", `{"worksheet":`+noLimit+`}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSimulations_RoundTrip(t *testing.T) {
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "progress.json"), "tester")
	h := newTestServer(t, fs).Routes()

	rr := do(t, h, http.MethodGet, "/api/simulations", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/simulations", worksheetBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var saved domain.SavedSimulation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.Won(17000), saved.TotalCost)

	list, err := fs.ListSimulations(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, "홍길동", list[0].CustomerName)
}

func TestSimulations_NoStore(t *testing.T) {
	h := newTestServer(t, nil).Routes()
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/api/simulations", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodPost, "/api/simulations", worksheetBody).Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
