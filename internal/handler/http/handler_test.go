package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/broadcast"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type mockTodoSvc struct {
	listFn   func(ctx context.Context) (models.Snapshot, error)
	createFn func(ctx context.Context, req models.CreateItemRequest) (models.Item, error)
	updateFn func(ctx context.Context, id models.ItemID, req models.UpdateItemRequest) (models.Item, error)
	deleteFn func(ctx context.Context, id models.ItemID) error
}

func (m *mockTodoSvc) List(ctx context.Context) (models.Snapshot, error) {
	if m.listFn == nil {
		return models.Snapshot{}, nil
	}
	return m.listFn(ctx)
}

func (m *mockTodoSvc) Create(ctx context.Context, req models.CreateItemRequest) (models.Item, error) {
	return m.createFn(ctx, req)
}

func (m *mockTodoSvc) Update(ctx context.Context, id models.ItemID, req models.UpdateItemRequest) (models.Item, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockTodoSvc) Delete(ctx context.Context, id models.ItemID) error {
	return m.deleteFn(ctx, id)
}

func newTestRouter(t *testing.T, svc service.TodoService) (http.Handler, *broadcast.Hub) {
	t.Helper()
	hub := broadcast.NewHub(logger.Nop())
	t.Cleanup(hub.Close)
	h := NewHandler(&service.Services{TodoService: svc}, hub,
		config.Server{HTTPAddress: ":0", RequestTimeout: time.Second}, logger.Nop())
	return h.Init(), hub
}

func do(t *testing.T, router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Error
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	hub := broadcast.NewHub(logger.Nop())
	log := logger.Nop()

	h := NewHandler(svc, hub, config.Server{RequestTimeout: 5 * time.Second}, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Same(t, hub, h.hub)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
}

// ─────────────────────────────────────────────
// GET /todos
// ─────────────────────────────────────────────

func TestListTodos_Success(t *testing.T) {
	snap := models.Snapshot{{ID: "1", Title: "milk"}, {ID: "2", Title: "bread", Completed: true}}
	router, _ := newTestRouter(t, &mockTodoSvc{
		listFn: func(context.Context) (models.Snapshot, error) { return snap, nil },
	})

	rr := do(t, router, http.MethodGet, "/todos", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":"1","title":"milk","completed":false},{"id":"2","title":"bread","completed":true}]`, rr.Body.String())
}

func TestListTodos_EmptyIsArray(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		listFn: func(context.Context) (models.Snapshot, error) { return nil, nil },
	})

	rr := do(t, router, http.MethodGet, "/todos", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListTodos_StoreFailure(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		listFn: func(context.Context) (models.Snapshot, error) {
			return nil, fmt.Errorf("%w: boom", store.ErrExecutingQuery)
		},
	})

	rr := do(t, router, http.MethodGet, "/todos", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, rr))
}

// ─────────────────────────────────────────────
// POST /todos
// ─────────────────────────────────────────────

func TestCreateTodo_Created(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		createFn: func(_ context.Context, req models.CreateItemRequest) (models.Item, error) {
			assert.Equal(t, "milk", req.Title)
			return models.Item{ID: "abc", Title: req.Title}, nil
		},
	})

	rr := do(t, router, http.MethodPost, "/todos", `{"title":"milk"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":"abc","title":"milk","completed":false}`, rr.Body.String())
}

func TestCreateTodo_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "invalid json", body: `{"title":`, wantStatus: http.StatusBadRequest},
		{name: "empty title", body: `{"title":"  "}`, svcErr: fmt.Errorf("%w: empty title", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest},
		{name: "duplicate id", body: `{"title":"x"}`, svcErr: store.ErrItemAlreadyExists, wantStatus: http.StatusConflict},
		{name: "unclassified", body: `{"title":"x"}`, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, &mockTodoSvc{
				createFn: func(context.Context, models.CreateItemRequest) (models.Item, error) {
					return models.Item{}, tt.svcErr
				},
			})

			rr := do(t, router, http.MethodPost, "/todos", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.NotEmpty(t, decodeError(t, rr))
		})
	}
}

// ─────────────────────────────────────────────
// PUT /todos/{id}
// ─────────────────────────────────────────────

func TestUpdateTodo_Success(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		updateFn: func(_ context.Context, id models.ItemID, req models.UpdateItemRequest) (models.Item, error) {
			assert.Equal(t, models.ItemID("42"), id)
			assert.True(t, req.Completed)
			return models.Item{ID: id, Title: req.Title, Completed: req.Completed}, nil
		},
	})

	rr := do(t, router, http.MethodPut, "/todos/42", `{"title":"milk","completed":true}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"42","title":"milk","completed":true}`, rr.Body.String())
}

func TestUpdateTodo_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		updateFn: func(context.Context, models.ItemID, models.UpdateItemRequest) (models.Item, error) {
			return models.Item{}, fmt.Errorf("%w: %w", service.ErrItemNotFound, store.ErrItemNotFound)
		},
	})

	rr := do(t, router, http.MethodPut, "/todos/missing", `{"title":"x","completed":false}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeError(t, rr), "not found")
}

func TestUpdateTodo_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{})

	rr := do(t, router, http.MethodPut, "/todos/1", `not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ─────────────────────────────────────────────
// DELETE /todos/{id}
// ─────────────────────────────────────────────

func TestDeleteTodo_NoContent(t *testing.T) {
	var deleted models.ItemID
	router, _ := newTestRouter(t, &mockTodoSvc{
		deleteFn: func(_ context.Context, id models.ItemID) error {
			deleted = id
			return nil
		},
	})

	rr := do(t, router, http.MethodDelete, "/todos/7", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, models.ItemID("7"), deleted)
}

func TestDeleteTodo_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		deleteFn: func(context.Context, models.ItemID) error {
			return fmt.Errorf("%w: %w", service.ErrItemNotFound, store.ErrItemNotFound)
		},
	})

	rr := do(t, router, http.MethodDelete, "/todos/7", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ─────────────────────────────────────────────
// Routing
// ─────────────────────────────────────────────

func TestRoutes_MethodNotAllowedIsJSON(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{})

	rr := do(t, router, http.MethodPatch, "/todos/1", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, decodeError(t, rr), "PATCH")
}

func TestRoutes_UnknownPath(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{})

	rr := do(t, router, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeError(t, rr), "/nope")
}

// ─────────────────────────────────────────────
// GET /ws
// ─────────────────────────────────────────────

func readPush(t *testing.T, conn *websocket.Conn) models.Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg models.PushMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.SnapshotEvent, msg.Event)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	return snap
}

func TestSubscribe_InitialSnapshotThenBroadcast(t *testing.T) {
	initial := models.Snapshot{{ID: "1", Title: "milk"}}
	router, hub := newTestRouter(t, &mockTodoSvc{
		listFn: func(context.Context) (models.Snapshot, error) { return initial, nil },
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, initial, readPush(t, conn))

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)
	next := models.Snapshot{{ID: "1", Title: "milk", Completed: true}}
	hub.Publish(next)

	assert.Equal(t, next, readPush(t, conn))
}

func TestSubscribe_ListFailureRejectsHandshake(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{
		listFn: func(context.Context) (models.Snapshot, error) { return nil, store.ErrExecutingQuery },
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSubscribe_PlainHTTPIsRejected(t *testing.T) {
	router, _ := newTestRouter(t, &mockTodoSvc{})

	rr := do(t, router, http.MethodGet, "/ws", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

