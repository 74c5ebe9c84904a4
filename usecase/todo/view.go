package todo

import (
	"sort"

	"github.com/judgmentfleet/site/domain"
)

// CategoryView filters items to category and orders them for display.
// Today and Upcoming list open items before finished ones; each group and the
// Completed list run newest first. Equal keys keep collection order.
func CategoryView(items []domain.TodoItem, category domain.Category) []domain.TodoItem {
	out := make([]domain.TodoItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}

	groupByCompletion := category != domain.CategoryCompleted
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if groupByCompletion && a.Completed != b.Completed {
			return !a.Completed
		}
		return a.CreatedAt > b.CreatedAt
	})
	return out
}
