package todo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides item id generation.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// Store owns the todo collection and the selected category.
// Every mutation writes the whole collection back to the snapshot repository.
// Operations never fail: empty input and unknown ids are reported through
// the boolean result only.
type Store struct {
	repo   repository.TodoSnapshotRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu     sync.Mutex
	items  []domain.TodoItem
	active domain.Category
}

// New loads the saved collection. Missing or malformed snapshots start empty.
func New(ctx context.Context, repo repository.TodoSnapshotRepository, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		items:  []domain.TodoItem{},
		active: domain.CategoryToday,
	}
	for _, opt := range opts {
		opt(s)
	}

	if repo != nil {
		items, err := repo.Load(ctx)
		switch {
		case errors.Is(err, domain.ErrSnapshotCorrupt):
			logger.Warn("discarding malformed todo snapshot", zap.Error(err))
		case err != nil:
			logger.Warn("todo snapshot unavailable, starting empty", zap.Error(err))
		default:
			s.items = items
		}
	}
	return s
}

// Add prepends a new item to the collection.
func (s *Store) Add(ctx context.Context, text string) (domain.TodoItem, bool) {
	if strings.TrimSpace(text) == "" {
		return domain.TodoItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.TodoItem{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		Category:  domain.CategoryForNewItem(s.active),
		CreatedAt: s.now().UnixMilli(),
	}
	s.items = append([]domain.TodoItem{item}, s.items...)
	s.persist(ctx, "add")
	return item, true
}

// Toggle flips completion and applies the category transition.
func (s *Store) Toggle(ctx context.Context, id string) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.TodoItem{}, false
	}
	s.items[idx] = domain.ToggleCompletion(s.items[idx])
	s.persist(ctx, "toggle")
	return s.items[idx], true
}

// Delete removes the item; the others keep their relative order.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.persist(ctx, "delete")
	return true
}

// Move sets the category directly. Completed items are not rejected here;
// callers decide whether the move makes sense.
func (s *Store) Move(ctx context.Context, id string, category domain.Category) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.TodoItem{}, false
	}
	s.items[idx].Category = category
	s.persist(ctx, "move")
	return s.items[idx], true
}

// SetActiveCategory changes the selection used for listing and new items.
func (s *Store) SetActiveCategory(category domain.Category) {
	s.mu.Lock()
	s.active = category
	s.mu.Unlock()
}

func (s *Store) ActiveCategory() domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Items returns a copy of the collection, newest insertion first.
func (s *Store) Items() []domain.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// View derives the ordered list for a category from the current collection.
func (s *Store) View(category domain.Category) []domain.TodoItem {
	return CategoryView(s.Items(), category)
}

// Counts returns the number of items per category.
func (s *Store) Counts() map[domain.Category]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, item := range s.items {
		counts[item.Category]++
	}
	return counts
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) {
	if s.repo == nil {
		return
	}
	snapshot := make([]domain.TodoItem, len(s.items))
	copy(snapshot, s.items)
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist todo snapshot",
			zap.String("operation", op),
			zap.Int("items", len(snapshot)),
			zap.Error(err))
	}
}
