package http

import (
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/broadcast"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/gorilla/websocket"
)

type Handler struct {
	services *service.Services
	hub      *broadcast.Hub
	upgrader websocket.Upgrader

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *broadcast.Hub, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},

		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
