package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Tab identifies one top-level page of the settings screen.
// The set is closed; use ParseTab to convert request input.
type Tab string

const (
	TabGeneral        Tab = "general_options"
	TabContent        Tab = "content_options"
	TabStyling        Tab = "styling_options"
	TabCookieSettings Tab = "cookie_settings"
)

// DefaultTab is shown when a request names no tab.
const DefaultTab = TabGeneral

// AllTabs lists the tabs in navigation order.
func AllTabs() []Tab {
	return []Tab{TabGeneral, TabContent, TabStyling, TabCookieSettings}
}

// ParseTab converts a request parameter into a Tab.
// An empty string selects DefaultTab.
func ParseTab(raw string) (Tab, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTab, nil
	}
	for _, t := range AllTabs() {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, raw)
}

// Capability is an abstract permission token used to gate tab visibility.
type Capability string

const (
	// CapabilityManageOptions is held by every authorized admin viewer.
	CapabilityManageOptions Capability = "manage_options"
	// CapabilityEditAppearance is the elevated capability for styling and cookie lists.
	CapabilityEditAppearance Capability = "edit_appearance"
)

// CapabilitySet is the set of capabilities held by the current caller.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from a list of capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Strings returns the sorted capability names, mostly for logging.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// TabAccess pairs a tab with the capability required to see it.
type TabAccess struct {
	Tab      Tab
	Requires Capability
}

// Allows reports whether caps satisfies the tab's requirement.
func (a TabAccess) Allows(caps CapabilitySet) bool {
	return caps.Has(a.Requires)
}
