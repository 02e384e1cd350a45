package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	maxWriteAttempts = 3
	retryBackoff     = 20 * time.Millisecond
)

type todoRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	return &todoRepository{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (r *todoRepository) List(ctx context.Context) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.listItemsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todoRepository.List").Msg("failed to query items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := models.Snapshot{}
	for rows.Next() {
		var (
			id   string
			item models.Item
		)
		if err = rows.Scan(&id, &item.Title, &item.Completed); err != nil {
			log.Err(err).Str("func", "todoRepository.List").Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		item.ID = models.ItemID(id)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "todoRepository.List").Msg("error iterating item rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *todoRepository) Create(ctx context.Context, item models.Item) (models.Item, error) {
	query, args, err := r.db.insertItemQuery(item, r.now())
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.exec(ctx, "todoRepository.Create", query, args...); err != nil {
		if r.db.errorClassificator.Classify(err) == Duplicate {
			return models.Item{}, fmt.Errorf("%w: %s", ErrItemAlreadyExists, item.ID)
		}
		return models.Item{}, err
	}

	return item, nil
}

func (r *todoRepository) Update(ctx context.Context, item models.Item) (models.Item, error) {
	query, args, err := r.db.updateItemQuery(item, r.now())
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "todoRepository.Update", query, args...)
	if err != nil {
		return models.Item{}, err
	}
	if affected == 0 {
		return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}

	return item, nil
}

func (r *todoRepository) Delete(ctx context.Context, id models.ItemID) error {
	query, args, err := r.db.deleteItemQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "todoRepository.Delete", query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	return nil
}

// exec runs a write statement, retrying errors the driver classifies as
// transient, and returns the number of affected rows.
func (r *todoRepository) exec(ctx context.Context, fn, query string, args ...any) (int64, error) {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		var res sql.Result
		res, err = r.db.ExecContext(ctx, query, args...)
		if err == nil {
			affected, rowsErr := res.RowsAffected()
			if rowsErr != nil {
				return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, rowsErr)
			}
			return affected, nil
		}

		if r.db.errorClassificator.Classify(err) != Retryable || attempt == maxWriteAttempts {
			break
		}

		log.Warn().Err(err).Str("func", fn).Int("attempt", attempt).Msg("retrying statement")
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	log.Err(err).Str("func", fn).Msg("failed to execute statement")
	return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}
