package role_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/routes"
)

func TestParseRoundTrip(t *testing.T) {
	for _, r := range []role.Role{role.Administrator, role.ActiveController, role.Observer} {
		parsed, err := role.Parse(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}
}

func TestParseUnknown(t *testing.T) {
	for _, s := range []string{"", "admin", "ADMINISTRATOR", "supervisor"} {
		parsed, err := role.Parse(s)
		require.ErrorIs(t, err, role.ErrUnknownRole)
		require.Equal(t, role.Unknown, parsed)
	}
}

func TestOnboardingTarget(t *testing.T) {
	tests := []struct {
		name  string
		role  role.Role
		facts role.Facts
		want  role.Target
	}{
		{
			name: "administrator is immediately complete",
			role: role.Administrator,
			want: role.Target{Route: routes.Companies, OnboardingComplete: true},
		},
		{
			name:  "active controller with existing shifts skips onboarding",
			role:  role.ActiveController,
			facts: role.Facts{ActiveShiftCount: 2},
			want:  role.Target{Route: routes.ShiftChange, OnboardingComplete: true},
		},
		{
			name: "active controller without shifts starts hours of rest",
			role: role.ActiveController,
			want: role.Target{Route: routes.HoursOfRest},
		},
		{
			name: "observer selects a controller first",
			role: role.Observer,
			want: role.Target{Route: routes.ObserverSelection},
		},
		{
			name: "unknown role falls back to role selection",
			role: role.Unknown,
			want: role.Target{Route: routes.RoleSelection},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.role.OnboardingTarget(tc.facts))
		})
	}
}

func TestFinalLanding(t *testing.T) {
	require.Equal(t, routes.Companies, role.Administrator.FinalLanding(role.Facts{}))
	require.Equal(t, routes.Dashboard, role.ActiveController.FinalLanding(role.Facts{}))
	require.Equal(t, routes.ShiftChange, role.ActiveController.FinalLanding(role.Facts{ActiveShiftCount: 1}))
	require.Equal(t, routes.Dashboard, role.Observer.FinalLanding(role.Facts{}))
	require.Equal(t, routes.RoleSelection, role.Unknown.FinalLanding(role.Facts{}))
}
