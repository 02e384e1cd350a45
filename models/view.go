package models

// View is the observable local state published by the reconciliation
// controller on every change.
type View struct {
	// Items is the last snapshot applied, in server order.
	Items Snapshot

	// Loading is true while the first list call of a generation is
	// outstanding. An empty Items slice is a valid loading render.
	Loading bool

	// Connection is the push channel state as reported by the listener.
	Connection ConnectionState

	// Err is the most recent user-visible error, nil once cleared by a
	// successful operation.
	Err error

	// Endpoint is the name of the endpoint the view belongs to.
	Endpoint string

	// Generation increases on every endpoint switch.
	Generation uint64
}
