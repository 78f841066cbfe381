package ports

import (
	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// NavigationEntry is one menu item: screens outside a staff allow-list come
// back disabled, never omitted.
type NavigationEntry struct {
	Screen  string `json:"screen"`
	Enabled bool   `json:"enabled"`
}

// NavigationView is what the client renders as its main navigation.
type NavigationView struct {
	Entries                  []NavigationEntry `json:"entries"`
	DefaultRoute             string            `json:"default_route"`
	RestrictedToSubscription bool              `json:"restricted_to_subscription"`
}

// AccessService resolves capability and routing decisions for the current
// actor. The decision logic itself lives in the domain package; this service
// adds observation (metrics, logging) around it.
type AccessService interface {
	Capabilities(actor *domain.Actor) *domain.CapabilitySet
	Navigation(actor *domain.Actor) *NavigationView
	Authorize(actor *domain.Actor, path string) domain.Decision
}
