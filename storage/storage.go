// Package storage defines the key/value surfaces the session kit persists
// through. Two surfaces exist per client: a shared store visible to every
// client of the same origin (survives reloads and closes), and a tab store
// private to one client instance (survives reloads, dies with the tab).
//
// Implementations never return errors: a missing or unavailable surface
// reads as absent and swallows writes, so callers degrade instead of
// failing (e.g. when running without any persistence surface at all).
package storage

// Store is a durable string key/value surface.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)
}

// Counter is an optional Store capability for atomic counter updates.
// Stores that cannot offer atomicity simply don't implement it; callers
// fall back to read-modify-write and tolerate the drift.
type Counter interface {
	// Incr increments the integer at key by one and returns the new value.
	Incr(key string) int64

	// Decr decrements the integer at key by one, floored at zero, and
	// returns the new value.
	Decr(key string) int64
}

// Cookies is the cookie mirror surface. Only the selected role is
// mirrored; it exists so the visibility gate can recover the role when
// the shared store is unavailable or was cleared by policy.
type Cookies interface {
	Get(name string) (string, bool)
	Set(name, value string)

	// Expire removes the cookie immediately.
	Expire(name string)
}
