package handler

import (
	"github.com/MKhiriev/go-todo-sync/internal/broadcast"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/handler/http"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, hub *broadcast.Hub, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, hub, cfg, logger)}, nil
}
