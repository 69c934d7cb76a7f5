package hydrate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/hydrate"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/storage/memstore"
	"github.com/shiftwatch/sessionguard/storage/noopstore"
)

func TestHydratePresentKeys(t *testing.T) {
	shared := memstore.New()
	shared.Set(storage.KeyOnboardingCompleted, "true")
	shared.Set(storage.KeyRememberMe, "true")
	shared.Set(storage.KeySelectedRole, "active_controller")
	shared.Set(storage.KeySignatureImage, "data:image/png;base64,AAAA")

	state := appstate.New()
	hydrate.New(shared, state).Hydrate()

	require.True(t, state.OnboardingCompleted())
	require.True(t, state.RememberMe())
	require.Equal(t, role.ActiveController, state.SelectedRole())
	require.True(t, state.SignatureCached())
}

func TestHydrateLeavesAbsentKeysAlone(t *testing.T) {
	state := appstate.New()
	state.SetOnboardingCompleted(true)
	state.SetSelectedRole(role.Observer)

	hydrate.New(memstore.New(), state).Hydrate()

	// Nothing persisted, nothing overwritten.
	require.True(t, state.OnboardingCompleted())
	require.Equal(t, role.Observer, state.SelectedRole())
}

func TestHydrateIgnoresUnknownRole(t *testing.T) {
	shared := memstore.New()
	shared.Set(storage.KeySelectedRole, "superuser")

	state := appstate.New()
	hydrate.New(shared, state).Hydrate()

	require.Equal(t, role.Unknown, state.SelectedRole())
}

func TestHydrateFalseValuesDispatch(t *testing.T) {
	// A present "false" is a real value, not an absence.
	shared := memstore.New()
	shared.Set(storage.KeyOnboardingCompleted, "false")

	state := appstate.New()
	state.SetOnboardingCompleted(true)
	hydrate.New(shared, state).Hydrate()

	require.False(t, state.OnboardingCompleted())
}

func TestHydrateNoSurface(t *testing.T) {
	state := appstate.New()
	hydrate.New(noopstore.New(), state).Hydrate()

	require.Equal(t, role.Unknown, state.SelectedRole())
	require.False(t, state.OnboardingCompleted())
}
