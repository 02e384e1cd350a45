package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
)

type ClientServices struct {
	Controller TodoController
}

// NewClientServices wires the controller for the endpoint selected by the
// configured profile.
func NewClientServices(cfg *config.ClientConfig, log *logger.Logger) (*ClientServices, error) {
	factory := NewClientFactory(cfg, log)

	controller, err := NewTodoController(cfg.Endpoint(), factory, workers.NewScheduler(), cfg.Sync, log.Named("controller"))
	if err != nil {
		return nil, err
	}

	return &ClientServices{Controller: controller}, nil
}
