package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/broadcast"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer — буфер логов, в который пишут горутины сервера
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) entries(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		out = append(out, entry)
	}
	return out
}

// requestEntry returns the access log line for uri, if written yet.
func (b *syncBuffer) requestEntry(t *testing.T, uri string) (map[string]any, bool) {
	t.Helper()
	for _, e := range b.entries(t) {
		if e["uri"] == uri {
			return e, true
		}
	}
	return nil, false
}

// newLoggedRouter is newTestRouter with the handler logger writing to a buffer.
func newLoggedRouter(t *testing.T, svc service.TodoService) (http.Handler, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	hub := broadcast.NewHub(logger.Nop())
	t.Cleanup(hub.Close)
	h := NewHandler(&service.Services{TodoService: svc}, hub,
		config.Server{HTTPAddress: ":0", RequestTimeout: time.Second},
		&logger.Logger{Logger: zerolog.New(logs)})
	return h.Init(), logs
}

// ── withLogging ──────────────────────────────────────────────────────────────

func TestWithLogging_CapturesStatusAndSize(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus float64
		wantSize   float64
	}{
		{
			name:       "implicit 200",
			handler:    func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("hello")) },
			wantStatus: http.StatusOK,
			wantSize:   5,
		},
		{
			name: "201 with body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"1"}`))
			},
			wantStatus: http.StatusCreated,
			wantSize:   10,
		},
		{
			name:       "204 without body",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
			wantStatus: http.StatusNoContent,
			wantSize:   0,
		},
		{
			name:       "http.Error",
			handler:    func(w http.ResponseWriter, r *http.Request) { http.Error(w, "not found", http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
			wantSize:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &syncBuffer{}
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			req = req.WithContext(zerolog.New(logs).WithContext(req.Context()))

			withLogging(tt.handler).ServeHTTP(httptest.NewRecorder(), req)

			entry, ok := logs.requestEntry(t, "/todos")
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Equal(t, tt.wantSize, entry["size"])
			assert.Equal(t, "GET", entry["method"])
		})
	}
}

func TestWithLogging_KeepsHijacker(t *testing.T) {
	hijackable := make(chan bool, 1)
	srv := httptest.NewServer(withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := w.(http.Hijacker)
		hijackable <- ok
	})))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.True(t, <-hijackable, "websocket upgrade needs http.Hijacker through the logger")
}

// ── Through the router ───────────────────────────────────────────────────────

func TestRouter_TodosRequestLogged(t *testing.T) {
	router, logs := newLoggedRouter(t, &mockTodoSvc{})

	rr := do(t, router, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rr.Code)

	entry, ok := logs.requestEntry(t, "/todos")
	require.True(t, ok)
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(rr.Body.Len()), entry["size"])
	assert.Equal(t, rr.Header().Get(traceIDHeader), entry["trace_id"])
}

func TestRouter_WebsocketLoggedAsUpgrade(t *testing.T) {
	router, logs := newLoggedRouter(t, &mockTodoSvc{})
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	readPush(t, conn)
	require.NoError(t, conn.Close())

	// строка лога пишется, когда подписчик уходит
	var entry map[string]any
	require.Eventually(t, func() bool {
		var ok bool
		entry, ok = logs.requestEntry(t, "/ws")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, float64(http.StatusSwitchingProtocols), entry["status"])
	assert.NotEmpty(t, entry["trace_id"])
}
