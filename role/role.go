// Package role defines the closed set of user roles and, per role, where
// the onboarding flow goes next. Role is a closed enum: the zero value
// means "no role selected", and anything unparseable stays that way, so
// the guards treat corrupt stored values exactly like absent ones.
package role

import (
	"github.com/pkg/errors"

	"github.com/shiftwatch/sessionguard/routes"
)

type Role uint8

const (
	// Unknown is the zero value: no role selected (or an unparseable
	// stored value).
	Unknown Role = iota
	Administrator
	ActiveController
	Observer
)

// ErrUnknownRole is returned by Parse for values outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

const (
	administratorValue    = "administrator"
	activeControllerValue = "active_controller"
	observerValue         = "observer"
)

func (r Role) String() string {
	switch r {
	case Administrator:
		return administratorValue
	case ActiveController:
		return activeControllerValue
	case Observer:
		return observerValue
	default:
		return "unknown"
	}
}

// Parse maps a stored string back onto the enum. Unknown input is an
// error, never a panic; callers treat it as "no role".
func Parse(s string) (Role, error) {
	switch s {
	case administratorValue:
		return Administrator, nil
	case activeControllerValue:
		return ActiveController, nil
	case observerValue:
		return Observer, nil
	default:
		return Unknown, errors.Wrap(ErrUnknownRole, s)
	}
}

// Facts are the already-loaded profile facts the route computation needs.
// The guard never fetches these itself.
type Facts struct {
	// ActiveShiftCount is how many active shift assignments the user
	// already holds.
	ActiveShiftCount int
}

// Target is where role selection sends the user next, and whether that
// destination already counts as onboarding complete.
type Target struct {
	Route              string
	OnboardingComplete bool
}

// OnboardingTarget computes the route a freshly selected role leads to.
//
// Administrators skip onboarding entirely. Active controllers with an
// existing shift assignment skip it too and land on shift change;
// without one they start the hours-of-rest → area-of-responsibility →
// signature sequence. Observers pick a controller to view as, then sign.
func (r Role) OnboardingTarget(f Facts) Target {
	switch r {
	case Administrator:
		return Target{Route: routes.Companies, OnboardingComplete: true}
	case ActiveController:
		if f.ActiveShiftCount > 0 {
			return Target{Route: routes.ShiftChange, OnboardingComplete: true}
		}
		return Target{Route: routes.HoursOfRest}
	case Observer:
		return Target{Route: routes.ObserverSelection}
	default:
		// Invalid state, not a new case: back to role selection.
		return Target{Route: routes.RoleSelection}
	}
}

// FinalLanding is the landing route once onboarding is complete
// (including the shared signature terminal step).
func (r Role) FinalLanding(f Facts) string {
	switch r {
	case Administrator:
		return routes.Companies
	case ActiveController:
		if f.ActiveShiftCount > 0 {
			return routes.ShiftChange
		}
		return routes.Dashboard
	case Observer:
		return routes.Dashboard
	default:
		return routes.RoleSelection
	}
}
