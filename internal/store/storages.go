package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

type Storages struct {
	TodoRepository TodoRepository

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		TodoRepository: NewTodoRepository(db, log),
		db:             db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
