package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full router over the real service and an
// in-memory store.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := mocks.NewMockDB()
	t.Cleanup(func() { _ = db.Close() })

	svc, err := service.NewTaskService(mocks.NewInMemoryTaskStore(), db, slog.Default())
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Tasks:   NewTaskHandler(svc, slog.Default()),
		Metrics: middleware.NewMetrics(),
		Logger:  slog.Default(),
	})
}

func createViaAPI(t *testing.T, h http.Handler, body string) int64 {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgTaskCreated, resp.Message)
	return resp.TaskID
}

func getViaAPI(t *testing.T, h http.Handler, id int64) TaskResponse {
	t.Helper()

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var task TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func listViaAPI(t *testing.T, h http.Handler, query string) TaskListResponse {
	t.Helper()

	target := "/api/tasks"
	if query != "" {
		target += "?" + query
	}
	rec := do(t, h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list TaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestRouter_CreateThenGet(t *testing.T) {
	h := newTestRouter(t)

	id := createViaAPI(t, h, `{"title":"Buy milk"}`)
	task := getViaAPI(t, h, id)

	assert.Equal(t, id, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.WithinDuration(t, time.Now(), task.CreatedAt, time.Minute)
}

func TestRouter_IDsStrictlyIncrease(t *testing.T) {
	h := newTestRouter(t)

	first := createViaAPI(t, h, `{"title":"one"}`)
	second := createViaAPI(t, h, `{"title":"two"}`)
	assert.Greater(t, second, first)

	rec := do(t, h, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", second), "")
	require.Equal(t, http.StatusOK, rec.Code)

	third := createViaAPI(t, h, `{"title":"three"}`)
	assert.Greater(t, third, second, "deleted IDs are never reused")
}

func TestRouter_Pagination(t *testing.T) {
	h := newTestRouter(t)
	for i := 1; i <= 12; i++ {
		createViaAPI(t, h, fmt.Sprintf(`{"title":"task %d"}`, i))
	}

	t.Run("default page", func(t *testing.T) {
		list := listViaAPI(t, h, "page=1")
		assert.Len(t, list.Tasks, 10)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 10, list.Limit)
		assert.Equal(t, 12, list.Total)
		assert.Equal(t, 2, list.TotalPages)
		assert.Equal(t, "task 1", list.Tasks[0].Title)
	})

	t.Run("pages partition the tasks in order", func(t *testing.T) {
		var ids []int64
		for page := 1; page <= 3; page++ {
			list := listViaAPI(t, h, fmt.Sprintf("page=%d&limit=5", page))
			assert.Equal(t, 3, list.TotalPages)
			for _, task := range list.Tasks {
				ids = append(ids, task.ID)
			}
		}
		require.Len(t, ids, 12)
		for i := 1; i < len(ids); i++ {
			assert.Less(t, ids[i-1], ids[i])
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		list := listViaAPI(t, h, "page=99&limit=5")
		assert.NotNil(t, list.Tasks)
		assert.Empty(t, list.Tasks)
		assert.Equal(t, 12, list.Total)
	})

	t.Run("no query returns every task", func(t *testing.T) {
		list := listViaAPI(t, h, "")
		assert.Len(t, list.Tasks, 12)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 10, list.Limit)
		assert.Equal(t, 12, list.Total)
	})
}

func TestRouter_PaginationSingleTaskPages(t *testing.T) {
	h := newTestRouter(t)
	for _, title := range []string{"first", "second", "third"} {
		createViaAPI(t, h, fmt.Sprintf(`{"title":%q}`, title))
	}

	list := listViaAPI(t, h, "page=2&limit=1")

	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "second", list.Tasks[0].Title)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 1, list.Limit)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestRouter_PaginationLargeValues(t *testing.T) {
	h := newTestRouter(t)
	for i := 1; i <= 3; i++ {
		createViaAPI(t, h, fmt.Sprintf(`{"title":"task %d"}`, i))
	}

	t.Run("max limit on the first page", func(t *testing.T) {
		list := listViaAPI(t, h, fmt.Sprintf("page=1&limit=%d", math.MaxInt64))
		assert.Len(t, list.Tasks, 3)
		assert.Equal(t, 3, list.Total)
		assert.Equal(t, 1, list.TotalPages)
	})

	rejected := []string{
		fmt.Sprintf("page=3&limit=%d", math.MaxInt64),
		fmt.Sprintf("page=%d&limit=2", math.MaxInt64),
		"page=99999999999999999999&limit=2",
	}
	for _, query := range rejected {
		t.Run(query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/tasks?"+query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"Invalid pagination parameters"}`, rec.Body.String())
		})
	}
}

func TestRouter_EmptyList(t *testing.T) {
	h := newTestRouter(t)

	for _, query := range []string{"", "page=1&limit=10"} {
		rec := do(t, h, http.MethodGet, "/api/tasks?"+query, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"tasks":[],"page":1,"limit":10,"total":0,"total_pages":0}`,
			rec.Body.String())
	}
}

func TestRouter_UpdatePreservesUnspecifiedFields(t *testing.T) {
	h := newTestRouter(t)
	id := createViaAPI(t, h, `{"title":"Original","completed":false}`)
	before := getViaAPI(t, h, id)

	rec := do(t, h, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task updated"}`, rec.Body.String())

	after := getViaAPI(t, h, id)
	assert.Equal(t, "Original", after.Title)
	assert.True(t, after.Completed)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	renamed := getViaAPI(t, h, id)
	assert.Equal(t, "Renamed", renamed.Title)
	assert.True(t, renamed.Completed)
}

func TestRouter_DeleteThenGet(t *testing.T) {
	h := newTestRouter(t)
	id := createViaAPI(t, h, `{"title":"Doomed"}`)
	path := fmt.Sprintf("/api/tasks/%d", id)

	rec := do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec = do(t, h, method, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Task not found"}`, rec.Body.String())
	}

	rec = do(t, h, http.MethodPut, path, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MissingTask(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/tasks/999999", "/api/tasks/99999999999999999999999"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Task not found"}`, rec.Body.String())
	}
}

func TestRouter_CreateWithoutTitleWritesNothing(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/tasks", `{"completed":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, listViaAPI(t, h, "").Total)
}

func TestRouter_JSONFallbacks(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/tasks/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodPatch, "/api/tasks/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
}

func TestRouter_TraceHeader(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/tasks/1", "")
	traceID := rec.Header().Get(shared.TraceIDHeader)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
	assert.NotContains(t, rec.Body.String(), traceID, "trace id travels in the header only")

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(shared.TraceIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(shared.TraceIDHeader))
}

func TestRouter_Health(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t)
	createViaAPI(t, h, `{"title":"counted"}`)
	do(t, h, http.MethodGet, "/api/tasks/1", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/api/tasks/{id:[0-9]+}"`)
	assert.Contains(t, body, "http_request_duration_seconds")
}

func TestNewRouter_RequiresHandler(t *testing.T) {
	assert.Panics(t, func() { NewRouter(RouterConfig{}) })
}
