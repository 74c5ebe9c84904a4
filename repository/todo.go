package repository

import (
	"context"

	"github.com/judgmentfleet/site/domain"
)

// TodoSnapshotKey is the single key holding the serialized todo collection.
const TodoSnapshotKey = "todos"

// TodoSnapshotRepository persists the todo collection as one unit.
type TodoSnapshotRepository interface {
	// Load returns an empty slice when nothing was saved yet and
	// domain.ErrSnapshotCorrupt when the stored bytes cannot be decoded.
	Load(ctx context.Context) ([]domain.TodoItem, error)
	Save(ctx context.Context, items []domain.TodoItem) error
}
