package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	assistantDomain "github.com/hiteshchouriya/rik/internal/assistant/domain"
	"github.com/hiteshchouriya/rik/internal/assistant/infrastructure/llm"
	habitsDomain "github.com/hiteshchouriya/rik/internal/habits/domain"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	journalQueries "github.com/hiteshchouriya/rik/internal/journal/application/queries"
	journalDomain "github.com/hiteshchouriya/rik/internal/journal/domain"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// statusFromError maps domain errors onto HTTP status codes. Anything
// unrecognized is an internal error.
func statusFromError(err error) int {
	var parseErr *sharedDomain.ParseError
	switch {
	case errors.Is(err, identityDomain.ErrProfileNotFound),
		errors.Is(err, planningDomain.ErrTaskNotFound),
		errors.Is(err, planningDomain.ErrScheduleItemNotFound),
		errors.Is(err, journalQueries.ErrDailyLogNotFound),
		errors.Is(err, assistantDomain.ErrAnalysisNotFound):
		return http.StatusNotFound
	case errors.As(err, &parseErr),
		errors.Is(err, identityDomain.ErrProfileInvalidMode),
		errors.Is(err, identityDomain.ErrProfileInvalidTime),
		errors.Is(err, habitsDomain.ErrHabitLogInvalidType),
		errors.Is(err, journalDomain.ErrRatingOutOfRange),
		errors.Is(err, planningDomain.ErrTaskEmptyTitle),
		errors.Is(err, planningDomain.ErrTaskInvalidPriority),
		errors.Is(err, planningDomain.ErrScheduleInvalidCategory),
		errors.Is(err, planningDomain.ErrScheduleInvalidDuration),
		errors.Is(err, assistantDomain.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, planningDomain.ErrTaskAlreadyDone):
		return http.StatusConflict
	case errors.Is(err, llm.ErrNotConfigured),
		errors.Is(err, llm.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err to a status and writes it. Internal errors get a
// generic message so storage details never leak to clients.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, err.Error())
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

func parseIntParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func parseBoolParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
