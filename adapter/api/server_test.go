package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers() Handlers {
	return Handlers{
		Profiles:  NewProfileHandler(ProfileHandlerConfig{}),
		Habits:    NewHabitsHandler(HabitsHandlerConfig{}),
		Journal:   NewJournalHandler(JournalHandlerConfig{}),
		Planning:  NewPlanningHandler(PlanningHandlerConfig{}),
		Assistant: NewAssistantHandler(AssistantHandlerConfig{}),
		Insights:  NewInsightsHandler(InsightsHandlerConfig{}),
	}
}

func TestServer_Health(t *testing.T) {
	server := NewServer(DefaultServerConfig(), testHandlers(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	server.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

// Each registered route should be matched by the mux. Requests carry bad IDs
// or empty bodies so handlers reject them before reaching any dependency.
func TestServer_Routes(t *testing.T) {
	server := NewServer(DefaultServerConfig(), testHandlers(), nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/api/users/bad-id"},
		{http.MethodPut, "/api/users/bad-id"},
		{http.MethodPost, "/api/habits/log"},
		{http.MethodGet, "/api/habits/bad-id/streaks"},
		{http.MethodGet, "/api/habits/bad-id/2026-08-26"},
		{http.MethodPost, "/api/daily-log"},
		{http.MethodGet, "/api/daily-log/bad-id/2026-08-26"},
		{http.MethodGet, "/api/daily-logs/bad-id"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/bad-id/2026-08-26"},
		{http.MethodPut, "/api/tasks/bad-id/complete"},
		{http.MethodDelete, "/api/tasks/bad-id"},
		{http.MethodPost, "/api/schedule/bad-id/generate"},
		{http.MethodGet, "/api/schedule/bad-id/2026-08-26"},
		{http.MethodPut, "/api/schedule/bad-id/complete"},
		{http.MethodPost, "/api/chat"},
		{http.MethodGet, "/api/chat/bad-id/history"},
		{http.MethodPost, "/api/analysis/bad-id"},
		{http.MethodGet, "/api/analysis/bad-id/2026-08-26"},
		{http.MethodGet, "/api/stats/bad-id"},
		{http.MethodGet, "/api/insights/bad-id"},
		{http.MethodGet, "/api/points/bad-id"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rec := httptest.NewRecorder()

			server.mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
