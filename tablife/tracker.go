// Package tablife tracks how many client instances (browser tabs) of the
// same origin are currently open, and marks the moment the count reaches
// zero. The marker, together with the token store's grace period, is how
// a genuine "user closed everything" is told apart from a reload: unload
// fires for both, but a reload either reports itself through navigation
// timing or comes back within the grace window.
//
// The shared counter is deliberately approximate. Crashed tabs and
// racing read-modify-writes can drift it; the consumer only needs a
// boolean "probably zero tabs" inside a five-second window, and the
// floor-at-zero discipline plus the focus handler self-heal the rest.
package tablife

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/storage"
)

// NavigationType classifies why a tab is unloading, per the navigation
// timing API.
type NavigationType uint8

const (
	// NavigateUnknown means no timing data was available. The unload is
	// treated as a genuine close — an accepted approximation, since the
	// grace period absorbs the occasional false positive.
	NavigateUnknown NavigationType = iota
	NavigateNew
	NavigateReload
	NavigateBackForward
)

// Navigation describes the unload event being handled. Persisted is the
// bfcache flag: the page is being frozen for restore, not closed.
type Navigation struct {
	Type      NavigationType
	Persisted bool
}

// SessionFlags is the slice of the token store the tracker needs.
type SessionFlags interface {
	RememberMe() bool
}

type Tracker struct {
	shared  storage.Store
	tab     storage.Store
	flags   SessionFlags
	nowFunc func() time.Time
	logger  zerolog.Logger
}

type Option func(*Tracker)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) Option {
	return func(t *Tracker) {
		t.nowFunc = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func New(shared storage.Store, tab storage.Store, flags SessionFlags, options ...Option) *Tracker {
	tr := &Tracker{
		shared:  shared,
		tab:     tab,
		flags:   flags,
		nowFunc: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(tr)
	}
	return tr
}

// Register counts this tab in, exactly once per tab lifetime. The tab id
// persisted in the tab store is the idempotency guard: a reload (or a
// re-run of the registration effect) finds the id and does not count
// again.
func (t *Tracker) Register() {
	if _, ok := t.tab.Get(storage.KeyTabID); ok {
		return
	}

	id := fmt.Sprintf("%d-%s", t.nowFunc().UnixMilli(), uuid.NewString()[:8])
	t.tab.Set(storage.KeyTabID, id)

	count := t.incr(storage.KeyTabCount)
	t.logger.Debug().Str("tab_id", id).Int64("tab_count", count).Msg("tab registered")
}

// TabID returns this tab's identifier, or "" before Register.
func (t *Tracker) TabID() string {
	id, _ := t.tab.Get(storage.KeyTabID)
	return id
}

// TabCount returns the current shared counter value.
func (t *Tracker) TabCount() int64 {
	raw, _ := t.shared.Get(storage.KeyTabCount)
	n, _ := strconv.ParseInt(raw, 10, 64)
	return n
}

// HandleUnload processes a pagehide/beforeunload signal. Reloads and
// bfcache freezes are not closes and leave the counter alone. A genuine
// close decrements the counter (floored at zero) and, for non-remember-me
// sessions with no tabs left, writes the closing marker the token store
// checks against its grace period.
func (t *Tracker) HandleUnload(nav Navigation) {
	if nav.Type == NavigateReload || nav.Persisted {
		return
	}

	count := t.decr(storage.KeyTabCount)
	if t.flags.RememberMe() || count > 0 {
		return
	}

	now := t.nowFunc().UnixMilli()
	t.shared.Set(storage.KeyClosingTimestamp, strconv.FormatInt(now, 10))
	t.logger.Debug().Int64("closed_at_ms", now).Msg("last tab closed, marker written")
}

// HandleFocus clears any closing marker: a tab regaining focus proves at
// least one tab is still alive, whatever the counter says.
func (t *Tracker) HandleFocus() {
	t.shared.Delete(storage.KeyClosingTimestamp)
}

// incr and decr use the store's atomic counter capability when it has
// one, and fall back to read-modify-write when it doesn't. The fallback
// can race across tabs; the counter tolerates drift.

func (t *Tracker) incr(key string) int64 {
	if c, ok := t.shared.(storage.Counter); ok {
		return c.Incr(key)
	}
	raw, _ := t.shared.Get(key)
	n, _ := strconv.ParseInt(raw, 10, 64)
	n++
	t.shared.Set(key, strconv.FormatInt(n, 10))
	return n
}

func (t *Tracker) decr(key string) int64 {
	if c, ok := t.shared.(storage.Counter); ok {
		return c.Decr(key)
	}
	raw, _ := t.shared.Get(key)
	n, _ := strconv.ParseInt(raw, 10, 64)
	if n > 0 {
		n--
	} else {
		n = 0
	}
	t.shared.Set(key, strconv.FormatInt(n, 10))
	return n
}
