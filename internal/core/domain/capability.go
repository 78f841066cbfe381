package domain

import (
	"strings"
	"time"
)

// ScreenEntry is one navigation entry in a resolved capability set. Entries
// outside a staff allow-list keep Enabled=false instead of disappearing: the
// portal shows them as disabled affordances, it never hides them.
type ScreenEntry struct {
	Screen  Screen `json:"screen"`
	Enabled bool   `json:"enabled"`
}

// CapabilitySet is the resolved, role-and-subscription-derived view of what
// an actor may reach. It has no independent lifecycle: it is recomputed from
// the Actor on every routing decision.
type CapabilitySet struct {
	Entries                  []ScreenEntry `json:"entries"`
	DefaultRoute             Screen        `json:"default_route"`
	RestrictedToSubscription bool          `json:"restricted_to_subscription"`
}

// CanReach reports whether the screen is enabled in this capability set.
func (cs *CapabilitySet) CanReach(screen Screen) bool {
	if cs == nil {
		return false
	}
	for _, e := range cs.Entries {
		if e.Screen == screen {
			return e.Enabled
		}
	}
	return false
}

// ReachableScreens returns the enabled screens in navigation order.
func (cs *CapabilitySet) ReachableScreens() []Screen {
	if cs == nil {
		return nil
	}
	out := make([]Screen, 0, len(cs.Entries))
	for _, e := range cs.Entries {
		if e.Enabled {
			out = append(out, e.Screen)
		}
	}
	return out
}

// ResolveCapabilities maps an actor to its capability set. Pure: no I/O, no
// side effects, deterministic given the actor and the supplied wall-clock
// instant (used only for the subscription expiry comparison).
//
// Rule order matters: the subscription gate for owner roles dominates every
// role-based rule.
func ResolveCapabilities(actor *Actor, now time.Time) *CapabilitySet {
	if actor == nil {
		return fallbackCapabilities()
	}
	role, err := ParseRole(string(actor.Role))
	if err != nil {
		return fallbackCapabilities()
	}

	if role.IsOwner() && !actor.Subscription.IsActive(now) {
		return &CapabilitySet{
			Entries:                  enabledEntries(restrictedScreens),
			DefaultRoute:             ScreenSubscription,
			RestrictedToSubscription: true,
		}
	}

	if role.IsStaff() {
		return staffCapabilities(role, actor.AllowedScreens)
	}

	return &CapabilitySet{
		Entries:      enabledEntries(roleScreens[role]),
		DefaultRoute: ScreenHome,
	}
}

// staffCapabilities intersects the owner whitelist with the staff allow-list.
// Owner-only screens are dropped outright; remaining screens outside the
// allow-list stay visible but disabled.
func staffCapabilities(role Role, allowed []string) *CapabilitySet {
	allowSet := make(map[Screen]struct{}, len(allowed))
	for _, s := range allowed {
		allowSet[Screen(strings.TrimSpace(strings.ToLower(s)))] = struct{}{}
	}

	var entries []ScreenEntry
	for _, screen := range roleScreens[role.OwnerEquivalent()] {
		if _, ownerOnly := ownerOnlyScreens[screen]; ownerOnly {
			continue
		}
		_, ok := allowSet[screen]
		entries = append(entries, ScreenEntry{Screen: screen, Enabled: ok})
	}

	cs := &CapabilitySet{Entries: entries, DefaultRoute: ScreenHome}
	if !cs.CanReach(ScreenHome) {
		// Home is the redirect anchor; a staff allow-list cannot lock the
		// actor out of it entirely.
		for i := range cs.Entries {
			if cs.Entries[i].Screen == ScreenHome {
				cs.Entries[i].Enabled = true
			}
		}
	}
	return cs
}

func fallbackCapabilities() *CapabilitySet {
	return &CapabilitySet{
		Entries:      enabledEntries(fallbackScreens),
		DefaultRoute: ScreenHome,
	}
}

func enabledEntries(screens []Screen) []ScreenEntry {
	entries := make([]ScreenEntry, 0, len(screens))
	for _, s := range screens {
		entries = append(entries, ScreenEntry{Screen: s, Enabled: true})
	}
	return entries
}
