package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuswatch/adapters"
	"statuswatch/types"
	"statuswatch/watcher"
)

func testRouter(t *testing.T) (*gin.Engine, *IncidentStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := adapters.NewRegistry()
	w := watcher.New(registry, watcher.SinkFunc(func(types.Incident) {}), watcher.Config{})
	store := NewIncidentStore(10)
	return NewRouter(w, store), store
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	rec := doGet(t, r, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestIncidentsEndpointReturnsNewestFirst(t *testing.T) {
	r, store := testRouter(t)

	first, err := types.NewIncident("openai", "API", "Investigating", "t1", time.Time{}, "", "")
	require.NoError(t, err)
	second, err := types.NewIncident("openai", "API", "Resolved", "t2", time.Time{}, "", "")
	require.NoError(t, err)
	store.Emit(first)
	store.Emit(second)

	rec := doGet(t, r, "/api/incidents")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count     int              `json:"count"`
		Incidents []types.Incident `json:"incidents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "Resolved", body.Incidents[0].Status)
	assert.Equal(t, "Investigating", body.Incidents[1].Status)
}

func TestIncidentsEndpointLimit(t *testing.T) {
	r, store := testRouter(t)
	for _, ts := range []string{"t1", "t2", "t3"} {
		inc, err := types.NewIncident("claude", "API", "Monitoring", ts, time.Time{}, "", "")
		require.NoError(t, err)
		store.Emit(inc)
	}

	rec := doGet(t, r, "/api/incidents?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestIncidentsEndpointRejectsBadLimit(t *testing.T) {
	r, _ := testRouter(t)

	rec := doGet(t, r, "/api/incidents?limit=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProvidersEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry := adapters.NewRegistry()
	w := watcher.New(registry, watcher.SinkFunc(func(types.Incident) {}), watcher.Config{})
	r := NewRouter(w, NewIncidentStore(10))

	rec := doGet(t, r, "/api/providers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"providers":[]}`, rec.Body.String())
}

func TestStoreEvictsOldestBeyondBound(t *testing.T) {
	store := NewIncidentStore(2)
	for _, ts := range []string{"t1", "t2", "t3"} {
		inc, err := types.NewIncident("bolna", "API", "Monitoring", ts, time.Time{}, "", "")
		require.NoError(t, err)
		store.Emit(inc)
	}

	recent := store.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "t3", recent[0].Timestamp)
	assert.Equal(t, "t2", recent[1].Timestamp)
}
