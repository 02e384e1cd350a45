package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

// subscribe upgrades the request to a websocket, sends the current snapshot
// and keeps the connection in the broadcast hub until the peer leaves.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	snapshot, err := h.services.TodoService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.subscribe").Msg("error loading initial snapshot")
		h.writeServiceError(w, err)
		return
	}

	// the 101 reply is written on the hijacked conn, not from w.Header()
	var upgradeHeader http.Header
	if traceID := w.Header().Get(traceIDHeader); traceID != "" {
		upgradeHeader = http.Header{}
		upgradeHeader.Set(traceIDHeader, traceID)
	}

	conn, err := h.upgrader.Upgrade(w, r, upgradeHeader)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Err(err).Str("func", "*Handler.subscribe").Msg("websocket upgrade failed")
		return
	}

	h.hub.Serve(conn, snapshot)
}
