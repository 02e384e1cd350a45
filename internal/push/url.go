package push

import (
	"fmt"
	"net/url"
	"strings"
)

// SocketPath is the websocket route relative to the socket base URL.
const SocketPath = "/ws"

// WebsocketURL turns a socket base URL (http, https, ws or wss) into the
// websocket URL of the push channel.
func WebsocketURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSocketURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidSocketURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidSocketURL)
	}

	u.Path = strings.TrimRight(u.Path, "/") + SocketPath
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}
