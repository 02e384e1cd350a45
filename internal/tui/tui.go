// Package tui is the terminal front end of the to-do client. It renders the
// controller's view and maps keys onto controller operations.
package tui

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	controller service.TodoController
	cfg        *config.ClientConfig
	logger     *logger.Logger
}

func New(controller service.TodoController, cfg *config.ClientConfig, logger *logger.Logger) *TUI {
	return &TUI{controller: controller, cfg: cfg, logger: logger}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	program := tea.NewProgram(newModel(ctx, t.controller, t.cfg), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.controller.Subscribe(func(v models.View) {
		program.Send(viewMsg{view: v})
	})
	defer unsubscribe()

	t.logger.Info().Str("endpoint", t.controller.Endpoint().Name).Msg("terminal ui started")

	_, err := program.Run()
	return err
}
