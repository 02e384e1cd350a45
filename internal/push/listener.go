package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	closeGracePeriod = time.Second
)

// Handlers receive listener events. Both are called from the listener's own
// goroutine, one event at a time; nil handlers are skipped.
type Handlers struct {
	OnState    func(models.ConnectionState)
	OnSnapshot func(models.Snapshot)
}

// Listener is a receive-only push channel client.
type Listener interface {
	// Start begins the connect cycle. Calling it on a running listener is a
	// no-op.
	Start()
	// Retry restarts the connect cycle with a fresh attempt budget. It is the
	// only way out of the terminal Error state. Concurrent calls leave exactly
	// one cycle running.
	Retry()
	// Stop closes the connection and waits for the listener goroutine. No
	// handler is called after Stop returns.
	Stop()
	// State returns the last reported connection state.
	State() models.ConnectionState
	// Err returns the failure that put the listener into Error, or nil.
	Err() error
	// URL returns the websocket URL the listener dials.
	URL() string
}

type wsListener struct {
	url      string
	cfg      config.ClientPush
	handlers Handlers
	dialer   *websocket.Dialer

	// lifecycle serializes Start, Retry and Stop; mu guards the fields below.
	lifecycle sync.Mutex

	mu      sync.Mutex
	state   models.ConnectionState
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}

	logger *logger.Logger
}

// NewListener builds a listener for the push channel at socketURL. It does
// not connect until Start is called.
func NewListener(socketURL string, cfg config.ClientPush, handlers Handlers, log *logger.Logger) (Listener, error) {
	wsURL, err := WebsocketURL(socketURL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &wsListener{
		url:      wsURL,
		cfg:      cfg,
		handlers: handlers,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		state:  models.ConnectionState{Status: models.Disconnected},
		logger: log,
	}, nil
}

func (l *wsListener) URL() string {
	return l.url
}

func (l *wsListener) State() models.ConnectionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *wsListener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *wsListener) Start() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return
	}
	l.startLocked()
}

func (l *wsListener) Retry() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	l.stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked()
}

func (l *wsListener) Stop() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	l.stop()
}

// stop cancels the running cycle and waits for its goroutine. The caller
// holds lifecycle.
func (l *wsListener) stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *wsListener) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel, l.done = cancel, done
	l.lastErr = nil

	go func() {
		defer close(done)
		l.run(ctx)
	}()
}

func (l *wsListener) run(ctx context.Context) {
	failures := 0

	for {
		l.setState(ctx, models.ConnectionState{Status: models.Connecting, Attempt: failures + 1}, nil)

		conn, err := l.dial(ctx)
		if ctx.Err() != nil {
			if conn != nil {
				_ = conn.Close()
			}
			return
		}

		if err != nil {
			failures++
			l.logger.Warn().Err(err).Int("attempt", failures).Str("url", l.url).Msg("push channel connect failed")

			if failures >= l.cfg.MaxAttempts {
				l.setState(ctx, models.ConnectionState{
					Status:  models.Error,
					Reason:  err.Error(),
					Attempt: failures,
				}, err)
				return
			}
		} else {
			failures = 0
			l.setState(ctx, models.ConnectionState{Status: models.Connected}, nil)
			l.logger.Info().Str("url", l.url).Msg("push channel connected")

			reason := l.receive(ctx, conn)
			if ctx.Err() != nil {
				return
			}

			l.logger.Info().Str("reason", reason).Msg("push channel disconnected")
			l.setState(ctx, models.ConnectionState{Status: models.Disconnected, Reason: reason}, nil)
			failures = 1
		}

		if !sleep(ctx, backoff(failures, l.cfg.InitialDelay, l.cfg.MaxDelay)) {
			return
		}
	}
}

func (l *wsListener) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := l.dialer.DialContext(ctx, l.url, nil)
	if err == nil {
		return conn, nil
	}

	if resp != nil {
		_ = resp.Body.Close()
		return nil, &ChannelError{
			Reason: fmt.Sprintf("handshake rejected with status %d", resp.StatusCode),
			Err:    err,
		}
	}
	return nil, &ChannelError{Reason: "connect failed", Err: err}
}

// receive reads until the connection drops or ctx is cancelled and returns
// the close reason.
func (l *wsListener) receive(ctx context.Context, conn *websocket.Conn) string {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client stopped")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
			_ = conn.Close()
		case <-stopped:
			_ = conn.Close()
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return closeReason(err)
		}
		l.handleMessage(ctx, payload)
	}
}

func (l *wsListener) handleMessage(ctx context.Context, payload []byte) {
	var msg models.PushMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		l.logger.Warn().Err(err).Msg("malformed push message ignored")
		return
	}

	if msg.Event != models.SnapshotEvent {
		l.logger.Debug().Str("event", msg.Event).Msg("unknown push event ignored")
		return
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(msg.Data, &snapshot); err != nil {
		l.logger.Warn().Err(err).Msg("malformed snapshot ignored")
		return
	}

	if ctx.Err() == nil && l.handlers.OnSnapshot != nil {
		l.handlers.OnSnapshot(snapshot.Clone())
	}
}

func (l *wsListener) setState(ctx context.Context, state models.ConnectionState, err error) {
	l.mu.Lock()
	if ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	l.state = state
	if err != nil {
		l.lastErr = err
	}
	l.mu.Unlock()

	if l.handlers.OnState != nil {
		l.handlers.OnState(state)
	}
}

func closeReason(err error) string {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		if ce.Text != "" {
			return ce.Text
		}
		return fmt.Sprintf("closed with code %d", ce.Code)
	}
	return err.Error()
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
