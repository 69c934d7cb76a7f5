// Package tokenstore is the single authority over the persisted bearer
// token, the remember-me flag, and the impersonation token. Every other
// component asks it one question: is there a valid session right now.
package tokenstore

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/storage"
)

// CloseGracePeriod is how long after the last tab disappeared a token
// still counts as valid for non-remember-me sessions. Within the window
// the closing marker is presumed to be a reload in progress; past it the
// session is treated as abandoned. Fixed design constant.
const CloseGracePeriod = 5 * time.Second

// sessionKeys is everything ClearAuth sweeps from both storage surfaces.
// The tab counter and tab id survive: they track open tabs, not the
// session. The impersonation token is included even though its lifecycle
// is nominally independent; an ordinary logout ends impersonation too.
var sessionKeys = []string{
	storage.KeyAuthToken,
	storage.KeyRememberMe,
	storage.KeySignatureImage,
	storage.KeySelectedRole,
	storage.KeyOnboardingCompleted,
	storage.KeyClosingTimestamp,
	storage.KeyDocumentViewMode,
	storage.KeyImpersonateToken,
	storage.KeyActiveControllerName,
}

// Manager is a constructed service, not a singleton: build one per
// client instance at startup and pass it down. No teardown is needed.
type Manager struct {
	shared  storage.Store
	tab     storage.Store
	cookies storage.Cookies
	nowFunc func() time.Time
	logger  zerolog.Logger
}

type Option func(*Manager)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func New(shared storage.Store, tab storage.Store, cookies storage.Cookies, options ...Option) *Manager {
	m := &Manager{
		shared:  shared,
		tab:     tab,
		cookies: cookies,
		nowFunc: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// StoreToken persists the bearer token and the remember-me choice.
// Callable repeatedly (re-login); later calls overwrite cleanly.
func (m *Manager) StoreToken(token string, rememberMe bool) {
	m.shared.Set(storage.KeyAuthToken, token)
	m.shared.Set(storage.KeyRememberMe, strconv.FormatBool(rememberMe))
}

// AuthToken returns the stored bearer token, or "" when there is none
// (including when no persistence surface exists).
func (m *Manager) AuthToken() string {
	token, _ := m.shared.Get(storage.KeyAuthToken)
	return token
}

// RememberMe reports the persisted remember-me choice.
func (m *Manager) RememberMe() bool {
	v, ok := m.shared.Get(storage.KeyRememberMe)
	return ok && v == "true"
}

// IsAuthenticated reports whether a valid session exists right now.
//
// Token presence is the baseline. For non-remember-me sessions a closing
// marker left by the tab tracker is consulted: within CloseGracePeriod
// of the marker the close is presumed to be a reload and only the marker
// is dropped; past it the whole session is cleared and the answer is no.
// Remember-me sessions ignore the marker entirely.
func (m *Manager) IsAuthenticated() bool {
	token, ok := m.shared.Get(storage.KeyAuthToken)
	if !ok || token == "" {
		return false
	}
	if m.RememberMe() {
		return true
	}

	raw, ok := m.shared.Get(storage.KeyClosingTimestamp)
	if !ok {
		return true
	}
	closedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupt marker: repair silently, keep the session.
		m.logger.Warn().Str("value", raw).Msg("dropping unparseable closing timestamp")
		m.shared.Delete(storage.KeyClosingTimestamp)
		return true
	}

	elapsed := m.nowFunc().UnixMilli() - closedAt
	if elapsed > CloseGracePeriod.Milliseconds() {
		m.logger.Info().Int64("elapsed_ms", elapsed).Msg("all tabs closed past grace period, expiring session")
		m.ClearAuth()
		return false
	}

	// Reload in progress: keep the token, drop the marker.
	m.shared.Delete(storage.KeyClosingTimestamp)
	return true
}

// ClearAuth removes every session-durable key from both surfaces and
// expires the role cookie mirror. Idempotent; safe when nothing is
// stored.
func (m *Manager) ClearAuth() {
	for _, key := range sessionKeys {
		m.shared.Delete(key)
		m.tab.Delete(key)
	}
	m.cookies.Expire(storage.CookieSelectedRole)
}

// SetImpersonateToken stores the secondary token an Observer uses while
// viewing as another controller.
func (m *Manager) SetImpersonateToken(token string) {
	m.shared.Set(storage.KeyImpersonateToken, token)
}

// ImpersonateToken returns the impersonation token, or "" when not
// impersonating.
func (m *Manager) ImpersonateToken() string {
	token, _ := m.shared.Get(storage.KeyImpersonateToken)
	return token
}

// ClearImpersonateToken ends impersonation without touching the primary
// session.
func (m *Manager) ClearImpersonateToken() {
	m.shared.Delete(storage.KeyImpersonateToken)
	m.shared.Delete(storage.KeyActiveControllerName)
}
