package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/api/metrics"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// AccessService wraps the pure capability and routing decisions with
// observation. It holds no state: the capability set is recomputed from the
// actor on every call so subscription expiry takes effect immediately.
type AccessService struct {
	now func() time.Time
	log zerolog.Logger
}

func NewAccessService(log zerolog.Logger) *AccessService {
	return &AccessService{now: time.Now, log: log}
}

// Capabilities returns nil for an unauthenticated actor so route decisions
// fall through to the public-screen rules.
func (s *AccessService) Capabilities(actor *domain.Actor) *domain.CapabilitySet {
	if actor == nil {
		return nil
	}
	return domain.ResolveCapabilities(actor, s.now())
}

// Navigation renders the capability set as menu entries. Disabled entries
// stay in the list: a staff actor sees what exists but not what it may not
// reach.
func (s *AccessService) Navigation(actor *domain.Actor) *ports.NavigationView {
	cs := s.Capabilities(actor)
	if cs == nil {
		return &ports.NavigationView{
			Entries: []ports.NavigationEntry{
				{Screen: string(domain.ScreenLogin), Enabled: true},
				{Screen: string(domain.ScreenRegister), Enabled: true},
			},
			DefaultRoute: string(domain.ScreenLogin),
		}
	}

	entries := make([]ports.NavigationEntry, 0, len(cs.Entries))
	for _, e := range cs.Entries {
		entries = append(entries, ports.NavigationEntry{Screen: string(e.Screen), Enabled: e.Enabled})
	}
	return &ports.NavigationView{
		Entries:                  entries,
		DefaultRoute:             string(cs.DefaultRoute),
		RestrictedToSubscription: cs.RestrictedToSubscription,
	}
}

func (s *AccessService) Authorize(actor *domain.Actor, path string) domain.Decision {
	decision := domain.Authorize(s.Capabilities(actor), path)

	metrics.AccessDecisionsTotal.WithLabelValues(string(decision.Kind)).Inc()
	if decision.Kind != domain.DecisionAllow {
		role := ""
		if actor != nil {
			role = string(actor.Role)
		}
		s.log.Debug().
			Str("path", path).
			Str("role", role).
			Str("decision", string(decision.Kind)).
			Str("to", string(decision.To)).
			Msg("navigation gated")
	}
	return decision
}
