package domain

// DecisionKind classifies the outcome of a route authorization.
type DecisionKind string

const (
	DecisionAllow    DecisionKind = "ALLOW"
	DecisionRedirect DecisionKind = "REDIRECT"
	DecisionDeny     DecisionKind = "DENY"
)

// Decision is the value the navigation layer consumes. Authorization never
// returns an error: unauthorized navigation is a redirect, not a failure.
type Decision struct {
	Kind DecisionKind `json:"decision"`
	To   Screen       `json:"to,omitempty"`
}

func allow() Decision               { return Decision{Kind: DecisionAllow} }
func redirectTo(to Screen) Decision { return Decision{Kind: DecisionRedirect, To: to} }

// Authorize decides whether the capability set admits the requested path.
// A nil capability set means the actor is unauthenticated: only the public
// auth screens are allowed, everything else redirects to login.
//
// Idempotence invariant: authorizing the target of a REDIRECT decision with
// the same capability set always yields ALLOW.
func Authorize(cs *CapabilitySet, path string) Decision {
	screen := NormalizeScreen(path)

	if cs == nil {
		if screen.IsPublic() {
			return allow()
		}
		return redirectTo(ScreenLogin)
	}

	// Authenticated actors have no business on the auth screens.
	if screen.IsPublic() {
		return redirectTo(cs.safeDefault())
	}

	if cs.CanReach(screen) {
		return allow()
	}
	return redirectTo(cs.safeDefault())
}

// safeDefault returns the default route, falling back to the first reachable
// screen so a redirect target is always itself allowed.
func (cs *CapabilitySet) safeDefault() Screen {
	if cs.CanReach(cs.DefaultRoute) {
		return cs.DefaultRoute
	}
	if reachable := cs.ReachableScreens(); len(reachable) > 0 {
		return reachable[0]
	}
	return ScreenHome
}
