package navigation

import (
	"math"

	"github.com/judgmentfleet/site/domain"
)

// Geometry is a snapshot of the viewport and the anchors it can highlight.
// Anchors holds document-relative top offsets; unmeasured anchors are omitted.
type Geometry struct {
	ScrollY        float64
	ViewportHeight float64
	Anchors        map[domain.Section]float64
}

// DocumentOffset converts a viewport-relative rect top into a document offset.
func DocumentOffset(rectTop, scrollY float64) float64 {
	return rectTop + scrollY
}

// ActiveSection returns the anchor closest to the vertical middle of the viewport.
// Ties go to the earlier anchor in domain.AnchorOrder.
func ActiveSection(g Geometry) domain.Section {
	middle := g.ScrollY + g.ViewportHeight/2

	best := domain.DefaultSection
	bestDistance := math.Inf(1)
	for _, section := range domain.AnchorOrder {
		top, ok := g.Anchors[section]
		if !ok || math.IsNaN(top) {
			continue
		}
		if d := math.Abs(top - middle); d < bestDistance {
			best, bestDistance = section, d
		}
	}
	return best
}

// Tracker remembers the last computed section so callers can skip redundant updates.
type Tracker struct {
	current domain.Section
}

func NewTracker() *Tracker {
	return &Tracker{current: domain.DefaultSection}
}

// Resume starts a tracker from a previously reported section; unknown values start at top.
func Resume(section string) *Tracker {
	t := NewTracker()
	if s, ok := domain.ParseSection(section); ok {
		t.current = s
	}
	return t
}

func (t *Tracker) Current() domain.Section {
	return t.current
}

// Update recomputes the section and reports whether it changed.
func (t *Tracker) Update(g Geometry) (domain.Section, bool) {
	next := ActiveSection(g)
	if next == t.current {
		return next, false
	}
	t.current = next
	return next, true
}

// Reconcile applies a pending deep link such as "#community".
// Fragments that name no anchor leave the tracker untouched.
func (t *Tracker) Reconcile(fragment string) (domain.Section, bool) {
	s, ok := domain.ParseSection(fragment)
	if !ok || fragment == "" {
		return t.current, false
	}
	changed := s != t.current
	t.current = s
	return s, changed
}

// Activate records an explicit navigation and returns the fragment to write to the URL.
// Passive scroll updates never produce a fragment.
func (t *Tracker) Activate(section domain.Section) string {
	if _, ok := domain.ParseSection(string(section)); !ok {
		section = domain.DefaultSection
	}
	t.current = section
	return section.Fragment()
}
