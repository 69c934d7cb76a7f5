package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/guard"
	"github.com/shiftwatch/sessionguard/hydrate"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/routes"
	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/storage/memstore"
	"github.com/shiftwatch/sessionguard/tokenstore"
)

type stubAuth struct {
	authenticated bool
}

func (a stubAuth) IsAuthenticated() bool { return a.authenticated }

type fixture struct {
	auth    *stubAuth
	state   *appstate.State
	shared  *memstore.MemStore
	cookies *memstore.CookieJar
	guard   *guard.Guard
}

func setup(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		auth:    &stubAuth{},
		state:   appstate.New(),
		shared:  memstore.New(),
		cookies: memstore.NewCookieJar(),
	}
	f.guard = guard.New(f.auth, f.state, f.shared, f.cookies)
	return f
}

func TestUnauthenticatedAlwaysRoutesToLogin(t *testing.T) {
	// Authentication outranks every other flag combination.
	f := setup(t)

	for _, onboarded := range []bool{false, true} {
		for _, r := range []role.Role{role.Unknown, role.Administrator, role.ActiveController, role.Observer} {
			f.state.SetOnboardingCompleted(onboarded)
			f.state.SetSelectedRole(r)

			for _, step := range []guard.Step{guard.StepOnboarding, guard.StepDashboard} {
				d := f.guard.Evaluate(step, routes.Dashboard)
				require.Equal(t, routes.Login, d.Redirect,
					"step=%s onboarded=%v role=%s", step, onboarded, r)
			}
		}
	}
}

func TestDashboardRouteWithoutSession(t *testing.T) {
	// Scenario: no token, no role, user hits the dashboard.
	f := setup(t)

	d := f.guard.Evaluate(guard.StepDashboard, routes.Dashboard)
	require.Equal(t, routes.Login, d.Redirect)
}

func TestAuthRouteUnauthenticatedRenders(t *testing.T) {
	f := setup(t)

	d := f.guard.Evaluate(guard.StepAuth, routes.Login)
	require.True(t, d.Allowed())
}

func TestAuthRouteAuthenticatedRedirectsToLanding(t *testing.T) {
	f := setup(t)
	f.auth.authenticated = true
	f.state.SetSelectedRole(role.Administrator)
	f.state.SetOnboardingCompleted(true)

	d := f.guard.Evaluate(guard.StepAuth, routes.Login)
	require.Equal(t, routes.Companies, d.Redirect)
}

func TestOnboardingWithoutRoleForcesRoleSelection(t *testing.T) {
	f := setup(t)
	f.auth.authenticated = true

	d := f.guard.Evaluate(guard.StepOnboarding, routes.Signature)
	require.Equal(t, routes.RoleSelection, d.Redirect)

	// Role selection itself renders.
	d = f.guard.Evaluate(guard.StepOnboarding, routes.RoleSelection)
	require.True(t, d.Allowed())
}

func TestDashboardBeforeOnboardingRedirectsToSubStep(t *testing.T) {
	// Scenario: authenticated controller with no active shift hits the
	// dashboard mid-onboarding.
	f := setup(t)
	f.auth.authenticated = true
	f.state.SetSelectedRole(role.ActiveController)

	d := f.guard.Evaluate(guard.StepDashboard, routes.Dashboard)
	require.Equal(t, routes.HoursOfRest, d.Redirect)
}

func TestDashboardOnboardedRenders(t *testing.T) {
	f := setup(t)
	f.auth.authenticated = true
	f.state.SetSelectedRole(role.Observer)
	f.state.SetOnboardingCompleted(true)

	d := f.guard.Evaluate(guard.StepDashboard, routes.Dashboard)
	require.True(t, d.Allowed())
}

func TestSelectRoleRouting(t *testing.T) {
	tests := []struct {
		name          string
		role          role.Role
		shiftCount    int
		wantRoute     string
		wantOnboarded bool
	}{
		{"administrator", role.Administrator, 0, routes.Companies, true},
		{"controller without shifts", role.ActiveController, 0, routes.HoursOfRest, false},
		{"controller with shifts", role.ActiveController, 2, routes.ShiftChange, true},
		{"observer", role.Observer, 0, routes.ObserverSelection, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t)
			f.auth.authenticated = true
			f.state.SetActiveShiftCount(tc.shiftCount)

			target, err := f.guard.SelectRole(tc.role)
			require.NoError(t, err)
			require.Equal(t, tc.wantRoute, target)
			require.Equal(t, tc.wantOnboarded, f.state.OnboardingCompleted())

			// Choice is persisted and mirrored.
			v, ok := f.shared.Get(storage.KeySelectedRole)
			require.True(t, ok)
			require.Equal(t, tc.role.String(), v)
			v, ok = f.cookies.Get(storage.CookieSelectedRole)
			require.True(t, ok)
			require.Equal(t, tc.role.String(), v)
		})
	}
}

func TestSelectRoleWithoutRole(t *testing.T) {
	f := setup(t)
	f.auth.authenticated = true

	_, err := f.guard.SelectRole(role.Unknown)
	require.ErrorIs(t, err, guard.ErrNoRoleSelected)
	require.False(t, f.state.OnboardingCompleted())
}

func TestCompleteSignature(t *testing.T) {
	f := setup(t)
	f.auth.authenticated = true
	f.state.SetSelectedRole(role.Observer)

	// No signature yet: stay on the signature step.
	require.Equal(t, routes.Signature, f.guard.CompleteSignature())
	require.False(t, f.state.OnboardingCompleted())

	f.state.SetSignatureCached(true)
	require.Equal(t, routes.Dashboard, f.guard.CompleteSignature())
	require.True(t, f.state.OnboardingCompleted())

	v, ok := f.shared.Get(storage.KeyOnboardingCompleted)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestCompleteSignatureControllerWithShifts(t *testing.T) {
	f := setup(t)
	f.state.SetSelectedRole(role.ActiveController)
	f.state.SetActiveShiftCount(1)
	f.state.SetSignatureCached(true)

	require.Equal(t, routes.ShiftChange, f.guard.CompleteSignature())
}

func TestCompleteSignatureWithoutRole(t *testing.T) {
	f := setup(t)
	f.state.SetSignatureCached(true)

	require.Equal(t, routes.RoleSelection, f.guard.CompleteSignature())
	require.False(t, f.state.OnboardingCompleted())
}

func TestAdministratorMissingCompletionFlagSelfHeals(t *testing.T) {
	// Role says administrator but the completion flag was lost: the
	// dashboard evaluation repairs it instead of looping.
	f := setup(t)
	f.auth.authenticated = true
	f.state.SetSelectedRole(role.Administrator)

	d := f.guard.Evaluate(guard.StepDashboard, routes.Companies)
	require.Equal(t, routes.Companies, d.Redirect)
	require.True(t, f.state.OnboardingCompleted())

	d = f.guard.Evaluate(guard.StepDashboard, routes.Companies)
	require.True(t, d.Allowed())
}

func TestFullStackOnboardingRedirect(t *testing.T) {
	// Scenario wired through the real token store and hydrator: token
	// present, onboarding incomplete, persisted controller role, no
	// active shifts → the dashboard route lands on hours of rest.
	shared := memstore.New()
	shared.Set(storage.KeySelectedRole, role.ActiveController.String())
	shared.Set(storage.KeyOnboardingCompleted, "false")

	cookies := memstore.NewCookieJar()
	manager := tokenstore.New(shared, memstore.New(), cookies)
	manager.StoreToken("tok", false)

	state := appstate.New()
	hydrate.New(shared, state).Hydrate()

	g := guard.New(manager, state, shared, cookies)
	d := g.Evaluate(guard.StepDashboard, routes.Dashboard)
	require.Equal(t, routes.HoursOfRest, d.Redirect)
}
