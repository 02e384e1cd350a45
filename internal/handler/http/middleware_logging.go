package http

import (
	"bufio"
	"net"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/felixge/httpsnoop"
)

// withLogging logs one line per request once the handler returns. For a
// websocket that is when the subscriber leaves, and the status is 101.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		uri := r.RequestURI
		method := r.Method

		var upgraded bool
		w = httpsnoop.Wrap(w, httpsnoop.Hooks{
			Hijack: func(hijack httpsnoop.HijackFunc) httpsnoop.HijackFunc {
				return func() (net.Conn, *bufio.ReadWriter, error) {
					conn, rw, err := hijack()
					upgraded = err == nil
					return conn, rw, err
				}
			},
		})

		m := httpsnoop.CaptureMetrics(next, w, r)

		status := m.Code
		if upgraded {
			status = http.StatusSwitchingProtocols
		}

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", status).
			Dur("duration", m.Duration).
			Int64("size", m.Written).
			Send()
	})
}
