// Package guard decides, for every guarded route, whether the current
// session may see it and where to send it otherwise. It is a pure state
// machine over the token store and in-memory session state: it performs
// no fetches, and every inconsistent input resolves to a redirect toward
// the earliest valid step, never to an error.
package guard

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/routes"
	"github.com/shiftwatch/sessionguard/storage"
)

// Auth is the slice of the token store the guard consults. Checked first
// on every evaluation; nothing else matters when it says no.
type Auth interface {
	IsAuthenticated() bool
}

// ErrNoRoleSelected is returned by SelectRole when asked to continue
// without a role. Surfaced to the user by the caller; guard state is
// left unchanged.
var ErrNoRoleSelected = errors.New("no role selected")

type Guard struct {
	auth    Auth
	state   *appstate.State
	shared  storage.Store
	cookies storage.Cookies
	logger  zerolog.Logger
}

type Option func(*Guard)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func New(auth Auth, state *appstate.State, shared storage.Store, cookies storage.Cookies, options ...Option) *Guard {
	g := &Guard{
		auth:    auth,
		state:   state,
		shared:  shared,
		cookies: cookies,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Evaluate runs the step guard and role guard for a route. route is the
// path being mounted; it matters only inside the onboarding step, where
// every route except role selection requires a selected role.
//
// Precedence: authentication first, always. An unauthenticated session
// goes to login no matter what the other flags claim.
func (g *Guard) Evaluate(step Step, route string) Decision {
	switch step {
	case StepAuth:
		if g.auth.IsAuthenticated() {
			return redirect(g.Landing())
		}
		return allow()

	case StepOnboarding:
		if !g.auth.IsAuthenticated() {
			return redirect(routes.Login)
		}
		if g.state.SelectedRole() == role.Unknown && route != routes.RoleSelection {
			return redirect(routes.RoleSelection)
		}
		return allow()

	case StepDashboard:
		if !g.auth.IsAuthenticated() {
			return redirect(routes.Login)
		}
		if !g.state.OnboardingCompleted() {
			return redirect(g.onboardingTarget())
		}
		return allow()

	default:
		g.logger.Warn().Uint8("step", uint8(step)).Msg("route declared with invalid step")
		return redirect(routes.Login)
	}
}

// SelectRole records the user's role choice and returns the route the
// onboarding flow continues at. Roles whose target is already complete
// (administrator, controller with a running shift) mark onboarding done
// on the spot.
func (g *Guard) SelectRole(r role.Role) (string, error) {
	if r == role.Unknown {
		return "", ErrNoRoleSelected
	}

	g.state.SetSelectedRole(r)
	g.shared.Set(storage.KeySelectedRole, r.String())
	g.cookies.Set(storage.CookieSelectedRole, r.String())

	target := r.OnboardingTarget(g.state.Facts())
	if target.OnboardingComplete {
		g.markOnboardingComplete()
	}
	g.logger.Info().Str("role", r.String()).Str("target", target.Route).Msg("role selected")
	return target.Route, nil
}

// CompleteSignature is the shared terminal onboarding step for active
// controllers and observers: with a signature in place (freshly uploaded
// or previously cached), onboarding is complete and the final landing is
// computed from role and shift facts. Without a role it falls back to
// role selection; without a signature it stays on the signature step.
func (g *Guard) CompleteSignature() string {
	r := g.state.SelectedRole()
	if r == role.Unknown {
		return routes.RoleSelection
	}
	if !g.state.SignatureCached() {
		return routes.Signature
	}

	g.markOnboardingComplete()
	return r.FinalLanding(g.state.Facts())
}

// Landing is the default route for an authenticated session: the next
// onboarding sub-step while onboarding is open, the role's landing page
// after.
func (g *Guard) Landing() string {
	if !g.state.OnboardingCompleted() {
		return g.onboardingTarget()
	}
	return g.state.SelectedRole().FinalLanding(g.state.Facts())
}

// onboardingTarget picks the onboarding sub-step the session belongs on.
// A role whose target is already complete heals the missing completion
// flag here, so the follow-up evaluation renders instead of looping.
func (g *Guard) onboardingTarget() string {
	r := g.state.SelectedRole()
	if r == role.Unknown {
		return routes.RoleSelection
	}

	target := r.OnboardingTarget(g.state.Facts())
	if target.OnboardingComplete {
		g.markOnboardingComplete()
	}
	return target.Route
}

func (g *Guard) markOnboardingComplete() {
	g.state.SetOnboardingCompleted(true)
	g.shared.Set(storage.KeyOnboardingCompleted, strconv.FormatBool(true))
}
