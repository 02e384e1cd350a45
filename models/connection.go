package models

// ConnectionStatus is the lifecycle state of the push channel.
type ConnectionStatus int

const (
	// Disconnected means no channel is open. Reason carries the close cause.
	Disconnected ConnectionStatus = iota
	// Connecting means a handshake (first or retry) is in progress.
	Connecting
	// Connected means the channel is open and snapshots may arrive.
	Connected
	// Error is terminal until a manual retry or an endpoint change.
	Error
)

// String returns a lower-case label suitable for logs and status lines.
func (s ConnectionStatus) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ConnectionState is a snapshot of the push channel lifecycle.
type ConnectionState struct {
	Status ConnectionStatus

	// Reason is the close reason for Disconnected and the last failure
	// message for Error. Empty otherwise.
	Reason string

	// Attempt is the 1-based reconnect attempt while Connecting.
	Attempt int
}
