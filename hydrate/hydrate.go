// Package hydrate repopulates a client's in-memory session state from
// durable storage at startup. It must run before the first guard
// evaluation; the wiring order enforces that, not an await.
package hydrate

import (
	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/storage"
)

type Hydrator struct {
	shared storage.Store
	state  *appstate.State
	logger zerolog.Logger
}

type Option func(*Hydrator)

func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hydrator) {
		h.logger = logger
	}
}

func New(shared storage.Store, state *appstate.State, options ...Option) *Hydrator {
	h := &Hydrator{
		shared: shared,
		state:  state,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Hydrate copies persisted session flags into in-memory state. Only keys
// actually present are dispatched: an absent key must never stomp an
// in-memory default with a forced false/empty. Reads local state only —
// no network, cannot fail, safe on a no-op surface, idempotent.
func (h *Hydrator) Hydrate() {
	if v, ok := h.shared.Get(storage.KeyOnboardingCompleted); ok {
		h.state.SetOnboardingCompleted(v == "true")
	}
	if v, ok := h.shared.Get(storage.KeyRememberMe); ok {
		h.state.SetRememberMe(v == "true")
	}
	if v, ok := h.shared.Get(storage.KeySelectedRole); ok {
		r, err := role.Parse(v)
		if err != nil {
			h.logger.Warn().Str("value", v).Msg("ignoring unparseable persisted role")
		} else {
			h.state.SetSelectedRole(r)
		}
	}
	if _, ok := h.shared.Get(storage.KeySignatureImage); ok {
		h.state.SetSignatureCached(true)
	}
}
