package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

// JSON-backed snapshot for the CLI. Single file, human-readable.
// No locking: one process owns the list at a time.

const dataFileName = repository.TodoSnapshotKey + ".json"

type todoRepository struct {
	path string
}

// NewTodoRepository keeps the snapshot in <dir>/todos.json.
func NewTodoRepository(dir string) repository.TodoSnapshotRepository {
	return &todoRepository{path: filepath.Join(dir, dataFileName)}
}

func (r *todoRepository) Load(ctx context.Context) ([]domain.TodoItem, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.TodoItem{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []domain.TodoItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if items == nil {
		items = []domain.TodoItem{}
	}
	return items, nil
}

func (r *todoRepository) Save(ctx context.Context, items []domain.TodoItem) error {
	if items == nil {
		items = []domain.TodoItem{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
