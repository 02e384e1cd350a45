package tui

import "github.com/MKhiriev/go-todo-sync/models"

// viewMsg carries a controller notification into the program loop.
type viewMsg struct {
	view models.View
}

type opDoneMsg struct {
	op  string
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
