package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoController = errors.New("client services have no controller")

var _ Client = (*App)(nil)

// UI is the interactive front end driven by the app.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || services.Controller == nil {
		return nil, errNoController
	}

	return &App{services: services, ui: ui, logger: logger}, nil
}

// Run blocks in the UI until the user quits or the process is signalled,
// then closes the controller.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer a.services.Controller.Close()

	a.logger.Info().Str("endpoint", a.services.Controller.Endpoint().Name).Msg("client started")

	err := a.ui.Run(ctx)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	a.logger.Info().Err(err).Msg("client stopped")
	return err
}
