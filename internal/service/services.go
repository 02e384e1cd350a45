package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

type Services struct {
	TodoService TodoService
}

func NewServices(storages *store.Storages, publisher Publisher, logger *logger.Logger) *Services {
	return &Services{
		TodoService: NewTodoService(storages.TodoRepository, publisher, utils.NewUUIDGenerator(), logger),
	}
}
