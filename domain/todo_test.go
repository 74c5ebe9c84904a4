package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleCompletionTransitions(t *testing.T) {
	cases := []struct {
		name         string
		completed    bool
		category     Category
		wantDone     bool
		wantCategory Category
	}{
		{"today completes", false, CategoryToday, true, CategoryCompleted},
		{"upcoming completes", false, CategoryUpcoming, true, CategoryCompleted},
		{"stale completed tag completes", false, CategoryCompleted, true, CategoryCompleted},
		{"completed reopens to today", true, CategoryCompleted, false, CategoryToday},
		{"moved done item keeps today", true, CategoryToday, false, CategoryToday},
		{"moved done item keeps upcoming", true, CategoryUpcoming, false, CategoryUpcoming},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToggleCompletion(TodoItem{ID: "a", Completed: tc.completed, Category: tc.category})
			assert.Equal(t, tc.wantDone, got.Completed)
			assert.Equal(t, tc.wantCategory, got.Category)
			assert.Equal(t, "a", got.ID)
		})
	}
}

func TestCategoryForNewItem(t *testing.T) {
	assert.Equal(t, CategoryToday, CategoryForNewItem(CategoryToday))
	assert.Equal(t, CategoryUpcoming, CategoryForNewItem(CategoryUpcoming))
	assert.Equal(t, CategoryToday, CategoryForNewItem(CategoryCompleted))
	assert.Equal(t, CategoryToday, CategoryForNewItem(""))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Upcoming ")
	assert.True(t, ok)
	assert.Equal(t, CategoryUpcoming, c)

	_, ok = ParseCategory("someday")
	assert.False(t, ok)
}

func TestParseSection(t *testing.T) {
	s, ok := ParseSection("#top-players")
	assert.True(t, ok)
	assert.Equal(t, SectionTopPlayers, s)
	assert.Equal(t, "#top-players", s.Fragment())

	_, ok = ParseSection("#faq")
	assert.False(t, ok)
}

func TestLocalePick(t *testing.T) {
	assert.Equal(t, "ciao", LocaleIT.Pick("ciao", "hello"))
	assert.Equal(t, "hello", LocaleEN.Pick("ciao", "hello"))
	assert.Equal(t, "ciao", LocaleEN.Pick("ciao", ""))
	assert.Equal(t, "hello", LocaleIT.Pick("", "hello"))
}
