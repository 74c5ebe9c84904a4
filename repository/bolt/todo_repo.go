package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/internal/infrastructure/localstore"
	"github.com/judgmentfleet/site/repository"
)

type todoRepository struct {
	store *localstore.Store
	key   string
}

// NewTodoRepository stores the todo snapshot under repository.TodoSnapshotKey.
func NewTodoRepository(store *localstore.Store) repository.TodoSnapshotRepository {
	return &todoRepository{store: store, key: repository.TodoSnapshotKey}
}

func (r *todoRepository) Load(ctx context.Context) ([]domain.TodoItem, error) {
	raw, err := r.store.Get(r.key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.TodoItem{}, nil
	}
	var items []domain.TodoItem
	if err := json.Unmarshal(raw, &items); err != nil {
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
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Put(r.key, payload)
}
