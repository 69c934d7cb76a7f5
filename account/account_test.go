package account_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/account"
	fakeaccountrepo "github.com/shiftwatch/sessionguard/account/repofake"
	"github.com/shiftwatch/sessionguard/role"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := account.HashPassword("correct horse battery")
	require.NoError(t, err)

	require.True(t, account.CheckPasswordHash("correct horse battery", hash))
	require.False(t, account.CheckPasswordHash("wrong password", hash))
	require.False(t, account.CheckPasswordHash("correct horse battery", "not-a-hash"))
}

func TestHasRole(t *testing.T) {
	acc := &account.Account{Roles: []role.Role{role.Observer, role.ActiveController}}

	require.True(t, acc.HasRole(role.Observer))
	require.True(t, acc.HasRole(role.ActiveController))
	require.False(t, acc.HasRole(role.Administrator))
}

func TestFakeRepoActiveControllers(t *testing.T) {
	repo := fakeaccountrepo.NewFakeAccountRepo()

	require.NoError(t, repo.Upsert(&account.Account{Username: "zoe", Roles: []role.Role{role.ActiveController}}))
	require.NoError(t, repo.Upsert(&account.Account{Username: "amir", Roles: []role.Role{role.ActiveController}}))
	require.NoError(t, repo.Upsert(&account.Account{Username: "blocked", Roles: []role.Role{role.ActiveController}, Blocked: true}))
	require.NoError(t, repo.Upsert(&account.Account{Username: "admin", Roles: []role.Role{role.Administrator}}))

	controllers, err := repo.ActiveControllers()
	require.NoError(t, err)
	require.Len(t, controllers, 2)
	require.Equal(t, "amir", controllers[0].Username)
	require.Equal(t, "zoe", controllers[1].Username)
}
