package application

// GuardDecision is the outcome of evaluating access to a protected page.
type GuardDecision int

const (
	// GuardLoading means the session is not initialized yet; render a neutral
	// loading state and never redirect.
	GuardLoading GuardDecision = iota
	// GuardRedirect sends the visitor to the login page.
	GuardRedirect
	// GuardAllow lets the protected page render.
	GuardAllow
)

func (d GuardDecision) String() string {
	switch d {
	case GuardLoading:
		return "loading"
	case GuardRedirect:
		return "redirect"
	case GuardAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard decides access to an admin page from the session state.
func Guard(state SessionState) GuardDecision {
	switch {
	case !state.Ready:
		return GuardLoading
	case !state.Authenticated:
		return GuardRedirect
	default:
		return GuardAllow
	}
}
