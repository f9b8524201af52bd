package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/health"
	"github.com/yourusername/keiba-desk/internal/models"
	"github.com/yourusername/keiba-desk/internal/repository"
	"github.com/yourusername/keiba-desk/internal/service"
	"github.com/yourusername/keiba-desk/internal/session"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg, err := config.LoadWithDefaults("testdata/does-not-exist.yaml")
	require.NoError(t, err)

	desk := service.NewDesk(
		datasource.NewSampleProvider(),
		session.NewStore(time.Hour, time.Hour),
		nil,
		repository.NewRepositories(nil),
		&cfg.Betting,
		log,
	)
	h := health.NewHandler(health.Config{ServiceName: "keiba-desk", Logger: log})
	h.SetReady(true)
	return NewServer(cfg, desk, h, log).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var snap session.Snapshot
	decodeBody(t, rec, &snap)
	return snap.ID.String()
}

func TestHealthRoutesMounted(t *testing.T) {
	h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", nil).Code)
}

func TestListBetTypes(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/bet-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var types []betTypeResponse
	decodeBody(t, rec, &types)
	require.Len(t, types, 7)
	assert.Equal(t, "single", types[0].Code)
	assert.Equal(t, "3連単", types[6].Label)
	assert.True(t, types[6].Ordered)
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap session.Snapshot
	decodeBody(t, rec, &snap)
	assert.Len(t, snap.Marks, 6)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil).Code)
}

func TestEntriesSorting(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/entries?sort=odds", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}
	decodeBody(t, rec, &rows)
	require.Len(t, rows, 6)
	assert.Equal(t, "アドマイヤテラ", rows[0].Name)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/entries?sort=weight", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarksAndManualScores(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h)
	horse := url.PathEscape("サンプルC")

	rec := do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/marks/"+horse, markRequest{Mark: "◎"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/marks/"+horse, markRequest{Mark: "★"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/manual-scores/"+horse, map[string]int{"value": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/manual-scores/"+horse, map[string]int{"value": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/manual-scores/"+horse, map[string]int{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/manual-scores/nobody", map[string]int{"value": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/scores", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []struct {
		Name   string      `json:"name"`
		Manual int         `json:"manual"`
		Total  float64     `json:"total"`
		Mark   models.Mark `json:"mark"`
	}
	decodeBody(t, rec, &rows)
	last := rows[len(rows)-1]
	assert.Equal(t, "サンプルC", last.Name)
	assert.Equal(t, 2, last.Manual)
	assert.Equal(t, 67.0, last.Total)
	assert.Equal(t, models.MarkHonmei, last.Mark)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/sessions/"+id+"/adjustments", nil).Code)
}

func TestAllocationEndpoint(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h)

	budget := 1000
	rec := do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/allocations", allocationRequest{
		BetType:  "単勝",
		Selected: []string{"アドマイヤテラ", "カランダガン", "サンプルA"},
		Budget:   &budget,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp allocationResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 999, resp.TotalAllocated)
	assert.Equal(t, 1, resp.Shortfall)
	assert.False(t, resp.FellBack)
	require.NotNil(t, resp.Combinations[0].EstimatedReturn)
	assert.Equal(t, "1065.6", resp.Combinations[0].EstimatedReturn.String())

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/allocations", allocationRequest{BetType: "trifecta"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.True(t, resp.FellBack)
	assert.Equal(t, 120, resp.Count)
	assert.Len(t, resp.Combinations, 50)
	assert.Equal(t, 1000, resp.Budget)
	assert.Equal(t, 960, resp.TotalAllocated)

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/allocations", allocationRequest{BetType: "枠連"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	negative := -100
	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/allocations", allocationRequest{BetType: "single", Budget: &negative})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/allocations", allocationRequest{
		BetType:   "single",
		Overrides: map[string]int{"Nobody": 100},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulationEndpoints(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/race", models.RaceMeta{Date: "20261018", Course: "東京", Number: 11, Grade: "G1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/v1/sessions/"+id+"/race", models.RaceMeta{Course: "Ascot"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	budget := 900
	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/simulations", allocationRequest{
		BetType:  "quinella",
		Selected: []string{"アドマイヤテラ", "カランダガン", "サンプルA"},
		Budget:   &budget,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var purchase models.Purchase
	decodeBody(t, rec, &purchase)
	assert.Equal(t, 900, purchase.Total)
	assert.Equal(t, "東京", purchase.Race.Course)

	rec = do(t, h, http.MethodGet, "/api/v1/simulations/"+purchase.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/simulations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Purchase
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(models.ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(models.ErrEmptyAllocation))
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrUnknownBetType))
	assert.Equal(t, http.StatusBadGateway, statusFor(datasource.NewDataSourceError("remote", datasource.ErrCodeNetworkError, "down", nil)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
