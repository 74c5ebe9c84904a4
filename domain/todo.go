package domain

import "strings"

// Category is the list a todo item currently belongs to.
type Category string

const (
	CategoryToday     Category = "today"
	CategoryUpcoming  Category = "upcoming"
	CategoryCompleted Category = "completed"
)

// Categories lists the closed set in display order.
var Categories = []Category{CategoryToday, CategoryUpcoming, CategoryCompleted}

// ParseCategory accepts the wire value, case-insensitively.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

func (c Category) Valid() bool {
	switch c {
	case CategoryToday, CategoryUpcoming, CategoryCompleted:
		return true
	}
	return false
}

// TodoItem is a single entry of the local todo list.
type TodoItem struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Category  Category `json:"category"`
	CreatedAt int64    `json:"createdAt"`
}

// completionTransitions maps (completed before toggle, category before toggle)
// to the category after the toggle. A missing entry keeps the category.
var completionTransitions = map[bool]map[Category]Category{
	false: {
		CategoryToday:     CategoryCompleted,
		CategoryUpcoming:  CategoryCompleted,
		CategoryCompleted: CategoryCompleted,
	},
	true: {
		CategoryCompleted: CategoryToday,
	},
}

// ToggleCompletion flips completion and applies the category transition.
// It is the only place an item enters or leaves CategoryCompleted on its own.
func ToggleCompletion(item TodoItem) TodoItem {
	if next, ok := completionTransitions[item.Completed][item.Category]; ok {
		item.Category = next
	}
	item.Completed = !item.Completed
	return item
}

// CategoryForNewItem returns the category a new item gets while active is selected.
func CategoryForNewItem(active Category) Category {
	if active == CategoryCompleted || !active.Valid() {
		return CategoryToday
	}
	return active
}
