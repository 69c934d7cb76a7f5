// Package account holds the external collaborators the session kit
// talks to: the account/profile lookup, the signature upload endpoint,
// and the controller list used by Observer impersonation. The guards
// never call these themselves; handlers do, and feed the results into
// session state.
package account

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftwatch/sessionguard/role"
)

// Account is an authenticated dashboard user as the profile endpoint
// returns it.
type Account struct {
	ID           string      `json:"id,omitempty"`
	Username     string      `json:"username,omitempty"`
	Name         string      `json:"name,omitempty"`
	PasswordHash string      `json:"-"` // never serialize
	Roles        []role.Role `json:"roles,omitempty"`

	// ActiveShiftCount is how many active shift assignments the account
	// holds; the role guard's "has existing shift" branch reads it.
	ActiveShiftCount int `json:"active_shift_count,omitempty"`

	Blocked bool `json:"blocked,omitempty"`
}

// HasRole reports whether the account may select the given role.
func (a *Account) HasRole(r role.Role) bool {
	for _, have := range a.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
