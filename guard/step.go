package guard

// Step is the ordered phase a guarded route belongs to:
// auth → onboarding → dashboard.
type Step uint8

const (
	// StepAuth routes are for unauthenticated users (login).
	StepAuth Step = iota

	// StepOnboarding routes are the post-login setup flow.
	StepOnboarding

	// StepDashboard routes require a fully onboarded session.
	StepDashboard
)

func (s Step) String() string {
	switch s {
	case StepAuth:
		return "auth"
	case StepOnboarding:
		return "onboarding"
	case StepDashboard:
		return "dashboard"
	default:
		return "invalid"
	}
}

// Decision is the outcome of a guard evaluation: render the route, or go
// somewhere else. The zero value allows.
type Decision struct {
	// Redirect is the target route, or "" to render the route's children.
	Redirect string
}

// Allowed reports whether the route may render.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func allow() Decision {
	return Decision{}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}
