package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceMiddleware(t *testing.T) {
	logBuf, base := logger.SetupTestLogger(t)

	var seenTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	NewTraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	_, err := uuid.Parse(seenTraceID)
	require.NoError(t, err)
	assert.Equal(t, seenTraceID, rec.Header().Get(shared.TraceIDHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	entries, err := logBuf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "inside handler", entries[0]["msg"])
	assert.Equal(t, seenTraceID, entries[0]["trace_id"], "handlers log through the request logger")

	assert.Equal(t, "request completed", entries[1]["msg"])
	assert.Equal(t, seenTraceID, entries[1]["trace_id"])
	assert.Equal(t, float64(http.StatusTeapot), entries[1]["status"])
	assert.Equal(t, "/api/tasks", entries[1]["path"])
}

func TestNewTraceMiddleware_ReusesClientTraceID(t *testing.T) {
	_, base := logger.SetupTestLogger(t)
	incoming := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(shared.TraceIDHeader, incoming)
	rec := httptest.NewRecorder()

	NewTraceMiddleware(base)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(shared.TraceIDHeader))
}

func TestNewTraceMiddleware_ImplicitStatus(t *testing.T) {
	logBuf, _ := logger.SetupTestLogger(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	NewTraceMiddleware(nil)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries, err := logBuf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(http.StatusOK), entries[0]["status"])
}
