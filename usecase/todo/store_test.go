package todo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgmentfleet/site/domain"
)

type memoryRepo struct {
	items   []domain.TodoItem
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryRepo) Load(ctx context.Context) ([]domain.TodoItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.TodoItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryRepo) Save(ctx context.Context, items []domain.TodoItem) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = make([]domain.TodoItem, len(items))
	copy(m.items, items)
	return nil
}

func newTestStore(t *testing.T, repo *memoryRepo) *Store {
	t.Helper()
	var seq int
	clock := time.UnixMilli(1_700_000_000_000)
	return New(context.Background(), repo, nil,
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		WithClock(func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		}),
	)
}

func TestAddPrependsIncompleteItem(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	store := newTestStore(t, repo)

	first, ok := store.Add(ctx, "scout opponents")
	require.True(t, ok)
	second, ok := store.Add(ctx, "book practice room")
	require.True(t, ok)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.False(t, items[0].Completed)
	assert.Equal(t, domain.CategoryToday, items[0].Category)
	assert.Greater(t, second.CreatedAt, first.CreatedAt)
	assert.Equal(t, 2, repo.saves)
	assert.Equal(t, items, repo.items)
}

func TestAddRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	store := newTestStore(t, repo)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := store.Add(ctx, text)
		assert.False(t, ok)
	}
	assert.Empty(t, store.Items())
	assert.Zero(t, repo.saves)
}

func TestAddUsesActiveCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memoryRepo{})

	store.SetActiveCategory(domain.CategoryUpcoming)
	item, _ := store.Add(ctx, "plan next season")
	assert.Equal(t, domain.CategoryUpcoming, item.Category)

	store.SetActiveCategory(domain.CategoryCompleted)
	item, _ = store.Add(ctx, "added from completed tab")
	assert.Equal(t, domain.CategoryToday, item.Category)
	assert.False(t, item.Completed)
	assert.Equal(t, domain.CategoryCompleted, store.ActiveCategory())
}

func TestToggleTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	for _, category := range []domain.Category{domain.CategoryToday, domain.CategoryUpcoming} {
		t.Run(string(category), func(t *testing.T) {
			store := newTestStore(t, &memoryRepo{})
			store.SetActiveCategory(category)
			item, _ := store.Add(ctx, "task")

			done, ok := store.Toggle(ctx, item.ID)
			require.True(t, ok)
			assert.True(t, done.Completed)
			assert.Equal(t, domain.CategoryCompleted, done.Category)

			reopened, ok := store.Toggle(ctx, item.ID)
			require.True(t, ok)
			assert.False(t, reopened.Completed)
			// the completed tag resets to today, upcoming is not remembered
			assert.Equal(t, domain.CategoryToday, reopened.Category)
		})
	}
}

func TestToggleRestoresCategoryOfMovedCompletedItem(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memoryRepo{})
	item, _ := store.Add(ctx, "task")

	store.Toggle(ctx, item.ID)
	store.Move(ctx, item.ID, domain.CategoryUpcoming)

	reopened, _ := store.Toggle(ctx, item.ID)
	assert.False(t, reopened.Completed)
	assert.Equal(t, domain.CategoryUpcoming, reopened.Category)

	again, _ := store.Toggle(ctx, item.ID)
	assert.True(t, again.Completed)
	assert.Equal(t, domain.CategoryCompleted, again.Category)
}

func TestMoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memoryRepo{})
	item, _ := store.Add(ctx, "task")

	moved, ok := store.Move(ctx, item.ID, domain.CategoryUpcoming)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryUpcoming, moved.Category)

	back, ok := store.Move(ctx, item.ID, domain.CategoryToday)
	require.True(t, ok)
	assert.Equal(t, item.Category, back.Category)
	assert.False(t, back.Completed)
}

func TestDeleteKeepsOrderOfOthers(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	store := newTestStore(t, repo)
	a, _ := store.Add(ctx, "a")
	b, _ := store.Add(ctx, "b")
	c, _ := store.Add(ctx, "c")

	require.True(t, store.Delete(ctx, b.ID))

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
	assert.Equal(t, items, repo.items)
}

func TestUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	store := newTestStore(t, repo)
	store.Add(ctx, "keep")
	saves := repo.saves

	_, ok := store.Toggle(ctx, "missing")
	assert.False(t, ok)
	_, ok = store.Move(ctx, "missing", domain.CategoryUpcoming)
	assert.False(t, ok)
	assert.False(t, store.Delete(ctx, "missing"))

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, saves, repo.saves)
}

func TestNewLoadsSnapshot(t *testing.T) {
	saved := []domain.TodoItem{
		{ID: "x", Text: "saved", Category: domain.CategoryUpcoming, CreatedAt: 5},
	}
	store := newTestStore(t, &memoryRepo{items: saved})
	assert.Equal(t, saved, store.Items())
}

func TestNewStartsEmptyOnBadSnapshot(t *testing.T) {
	corrupt := &memoryRepo{loadErr: fmt.Errorf("%w: eof", domain.ErrSnapshotCorrupt)}
	assert.Empty(t, newTestStore(t, corrupt).Items())

	broken := &memoryRepo{loadErr: errors.New("disk gone")}
	assert.Empty(t, newTestStore(t, broken).Items())
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{saveErr: errors.New("read-only")}
	store := newTestStore(t, repo)

	_, ok := store.Add(ctx, "still here")
	assert.True(t, ok)
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 1, repo.saves)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memoryRepo{})
	a, _ := store.Add(ctx, "a")
	store.Add(ctx, "b")
	c, _ := store.Add(ctx, "c")
	store.Toggle(ctx, a.ID)
	store.Move(ctx, c.ID, domain.CategoryUpcoming)

	assert.Equal(t, map[domain.Category]int{
		domain.CategoryToday:     1,
		domain.CategoryUpcoming:  1,
		domain.CategoryCompleted: 1,
	}, store.Counts())
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memoryRepo{})
	store.Add(ctx, "original")

	items := store.Items()
	items[0].Text = "mutated"
	assert.Equal(t, "original", store.Items()[0].Text)
}
