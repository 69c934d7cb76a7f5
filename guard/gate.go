package guard

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/storage"
)

// Gate hides or shows a UI subtree based on the session's selected role.
// It prefers in-memory state; on the very first paint after a hard
// reload that may still be empty while durable storage already knows the
// answer, so it falls back once to the shared store and then the cookie
// mirror, syncing whatever it finds back into memory. No role from any
// source means not visible: the gate fails closed.
type Gate struct {
	state    *appstate.State
	shared   storage.Store
	cookies  storage.Cookies
	fallback sync.Once
	logger   zerolog.Logger
}

type GateOption func(*Gate)

func WithGateLogger(logger zerolog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

func NewGate(state *appstate.State, shared storage.Store, cookies storage.Cookies, options ...GateOption) *Gate {
	g := &Gate{
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

// Visible reports whether a subtree gated on the given allow-list may
// render for the current session.
func (g *Gate) Visible(allowed ...role.Role) bool {
	r := g.state.SelectedRole()
	if r == role.Unknown {
		g.fallback.Do(g.restoreRole)
		r = g.state.SelectedRole()
	}
	if r == role.Unknown {
		return false
	}

	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

// restoreRole runs at most once per gate: shared store first, cookie
// mirror second. A hit is synced into appstate so later renders never
// repeat the fallback read.
func (g *Gate) restoreRole() {
	v, ok := g.shared.Get(storage.KeySelectedRole)
	if !ok {
		v, ok = g.cookies.Get(storage.CookieSelectedRole)
	}
	if !ok {
		return
	}

	r, err := role.Parse(v)
	if err != nil {
		g.logger.Warn().Str("value", v).Msg("ignoring unparseable fallback role")
		return
	}
	g.state.SetSelectedRole(r)
}
