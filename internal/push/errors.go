package push

import (
	"errors"
	"fmt"
)

// ErrInvalidSocketURL is returned when the socket base URL cannot be turned
// into a websocket URL.
var ErrInvalidSocketURL = errors.New("invalid socket url")

// ChannelError is a push channel connect or handshake failure carrying a
// human-readable reason.
type ChannelError struct {
	Reason string
	Err    error
}

func (e *ChannelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("push channel: %s", e.Reason)
	}
	return fmt.Sprintf("push channel: %s: %v", e.Reason, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
