package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/internal/validators"
	"github.com/MKhiriev/go-todo-sync/models"
)

type todoService struct {
	repository store.TodoRepository
	publisher  Publisher
	validator  validators.Validator
	ids        utils.IDGenerator

	// mu serializes mutate-then-publish so broadcasts leave in commit order.
	mu sync.Mutex

	logger *logger.Logger
}

func NewTodoService(repository store.TodoRepository, publisher Publisher, ids utils.IDGenerator, logger *logger.Logger) TodoService {
	return &todoService{
		repository: repository,
		publisher:  publisher,
		validator:  validators.NewItemValidator(),
		ids:        ids,
		logger:     logger,
	}
}

func (s *todoService) List(ctx context.Context) (models.Snapshot, error) {
	return s.repository.List(ctx)
}

func (s *todoService) Create(ctx context.Context, req models.CreateItemRequest) (models.Item, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repository.Create(ctx, models.Item{
		ID:    models.ItemID(s.ids.Generate()),
		Title: req.Title,
	})
	if err != nil {
		return models.Item{}, err
	}

	s.publishLocked(ctx)
	return item, nil
}

func (s *todoService) Update(ctx context.Context, id models.ItemID, req models.UpdateItemRequest) (models.Item, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(ctx, id); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repository.Update(ctx, models.Item{ID: id, Title: req.Title, Completed: req.Completed})
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}

	s.publishLocked(ctx)
	return item, nil
}

func (s *todoService) Delete(ctx context.Context, id models.ItemID) error {
	if err := s.validator.Validate(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repository.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.publishLocked(ctx)
	return nil
}

// publishLocked broadcasts the committed state. A failed re-list is logged
// only: the mutation already succeeded and clients converge through their
// own fallback refetch.
func (s *todoService) publishLocked(ctx context.Context) {
	snapshot, err := s.repository.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "todoService.publish").Msg("failed to load snapshot for broadcast")
		return
	}
	s.publisher.Publish(snapshot)
}

func mapStoreError(err error) error {
	if errors.Is(err, store.ErrItemNotFound) {
		return fmt.Errorf("%w: %w", ErrItemNotFound, err)
	}
	return err
}
