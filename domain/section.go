package domain

import "strings"

// Section identifies a scroll anchor on the landing page.
type Section string

const (
	SectionTop        Section = "top"
	SectionCommunity  Section = "community"
	SectionTopPlayers Section = "top-players"
	SectionResources  Section = "resources"
)

// DefaultSection is reported when nothing can be measured.
const DefaultSection = SectionTop

// AnchorOrder is the priority order used to break distance ties.
var AnchorOrder = []Section{SectionTop, SectionCommunity, SectionTopPlayers, SectionResources}

// ParseSection accepts an anchor id with or without a leading '#'.
func ParseSection(raw string) (Section, bool) {
	s := Section(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	for _, known := range AnchorOrder {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Fragment returns the URL fragment for the section.
func (s Section) Fragment() string {
	return "#" + string(s)
}
