// Package server is the HTTP face of the ShiftWatch dashboard. Every
// route is declared with the onboarding step it belongs to; a middleware
// evaluates the navigation guard per request and redirects instead of
// rendering when the session is not where it should be. The server hosts
// one client instance of the session kit: its tab store and in-memory
// state belong to this process, while the shared store may be Redis and
// visible to other instances.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/shiftwatch/sessionguard/account"
	"github.com/shiftwatch/sessionguard/alert"
	"github.com/shiftwatch/sessionguard/appstate"
	"github.com/shiftwatch/sessionguard/guard"
	"github.com/shiftwatch/sessionguard/hydrate"
	"github.com/shiftwatch/sessionguard/internal/config"
	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/tablife"
	"github.com/shiftwatch/sessionguard/tokenstore"
)

// Repos holds the external collaborators the handlers call.
type Repos struct {
	Accounts   account.Repo
	Signatures account.SignatureRepo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos

	shared   storage.Store
	tokens   *tokenstore.Manager
	state    *appstate.State
	guard    *guard.Guard
	gate     *guard.Gate
	tracker  *tablife.Tracker
	alerts   alert.Sink
	tokenTTL time.Duration
}

func New(cfg config.Config, repos Repos, shared storage.Store, tab storage.Store, cookies storage.Cookies) (*Server, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[Server New] Accounts repo is required")
	}
	if repos.Signatures == nil {
		return nil, errors.New("[Server New] Signatures repo is required")
	}

	tokenTTL, err := time.ParseDuration(cfg.GetTokenExpiry())
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] bad TOKEN_EXPIRY")
	}

	tokens := tokenstore.New(shared, tab, cookies, tokenstore.WithLogger(log.Logger))
	state := appstate.New()

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		repos:    repos,
		shared:   shared,
		tokens:   tokens,
		state:    state,
		guard:    guard.New(tokens, state, shared, cookies, guard.WithLogger(log.Logger)),
		gate:     guard.NewGate(state, shared, cookies, guard.WithGateLogger(log.Logger)),
		tracker:  tablife.New(shared, tab, tokens, tablife.WithLogger(log.Logger)),
		alerts:   alert.LogSink{Logger: log.Logger},
		tokenTTL: tokenTTL,
	}

	// Hydrate before the first guard evaluation, then count this
	// instance in.
	hydrate.New(shared, state, hydrate.WithLogger(log.Logger)).Hydrate()
	s.tracker.Register()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
