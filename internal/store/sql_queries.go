package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-sync/models"
)

const todosTable = "todos"

func (db *DB) listItemsQuery() (string, []any, error) {
	return db.builder.
		Select("id", "title", "completed").
		From(todosTable).
		OrderBy("created_at", "id").
		ToSql()
}

func (db *DB) insertItemQuery(item models.Item, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(todosTable).
		Columns("id", "title", "completed", "created_at", "updated_at").
		Values(item.ID.String(), item.Title, item.Completed, now, now).
		ToSql()
}

func (db *DB) updateItemQuery(item models.Item, now time.Time) (string, []any, error) {
	return db.builder.
		Update(todosTable).
		Set("title", item.Title).
		Set("completed", item.Completed).
		Set("updated_at", now).
		Where(sq.Eq{"id": item.ID.String()}).
		ToSql()
}

func (db *DB) deleteItemQuery(id models.ItemID) (string, []any, error) {
	return db.builder.
		Delete(todosTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
}
