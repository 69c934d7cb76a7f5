package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shiftwatch/sessionguard/account"
	"github.com/shiftwatch/sessionguard/routes"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// LoginPageHandler renders the login page stub. The step guard in front
// of it already bounced authenticated sessions to their landing route.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"page":    "login",
			"appName": s.config.GetAppName(),
			"error":   r.URL.Query().Get("error"),
		})
	}
}

// LoginSubmissionHandler checks credentials, issues a bearer token, and
// sends the session to its landing route. Failures keep the user on the
// login page; the guard state is untouched.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, routes.Login+"?error=Invalid+request", http.StatusSeeOther)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		rememberMe := r.PostFormValue("remember_me") == "true"

		acc, err := s.repos.Accounts.GetByUsername(username)
		if err != nil || acc == nil || !account.CheckPasswordHash(password, acc.PasswordHash) {
			s.alerts.Error("Invalid username or password")
			http.Redirect(w, r, routes.Login+"?error=Invalid+credentials", http.StatusSeeOther)
			return
		}
		if acc.Blocked {
			s.alerts.Error("Account is blocked")
			http.Redirect(w, r, routes.Login+"?error=Account+blocked", http.StatusSeeOther)
			return
		}

		token, err := s.mintToken(acc, "", time.Now())
		if err != nil {
			log.Error().Err(err).Msg("minting bearer token")
			http.Redirect(w, r, routes.Login+"?error=Login+failed", http.StatusSeeOther)
			return
		}

		s.tokens.StoreToken(token, rememberMe)
		s.state.SetRememberMe(rememberMe)
		s.state.SetActiveShiftCount(acc.ActiveShiftCount)

		http.Redirect(w, r, s.guard.Landing(), http.StatusSeeOther)
	}
}

// LogoutHandler ends the session: durable sweep plus in-memory reset.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.tokens.ClearAuth()
		s.state.Reset()
		http.Redirect(w, r, routes.Login, http.StatusSeeOther)
	}
}

// MeHandler introspects the session's bearer token.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := s.tokens.AuthToken()
		if token == "" || !s.tokens.IsAuthenticated() {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthenticated"})
			return
		}
		claims, err := s.introspectToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, claims)
	}
}
