package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/routes"
	"github.com/shiftwatch/sessionguard/storage"
)

// RoleSelectionPageHandler lists the roles the logged-in account may
// pick from.
func (s *Server) RoleSelectionPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := s.currentAccount()
		if err != nil {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		names := make([]string, 0, len(acc.Roles))
		for _, ar := range acc.Roles {
			names = append(names, ar.String())
		}
		writeJSON(w, http.StatusOK, map[string]any{"page": "role-selection", "roles": names})
	}
}

// RoleSelectionSubmitHandler records the chosen role and continues the
// onboarding flow wherever that role leads.
func (s *Server) RoleSelectionSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, routes.RoleSelection+"?error=Invalid+request", http.StatusSeeOther)
			return
		}

		chosen, err := role.Parse(r.PostFormValue("role"))
		if err != nil {
			s.alerts.Warn("Please select a role to continue")
			http.Redirect(w, r, routes.RoleSelection+"?error=Select+a+role", http.StatusSeeOther)
			return
		}

		acc, err := s.currentAccount()
		if err != nil {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}
		if !acc.HasRole(chosen) {
			s.alerts.Error("Role not available for this account")
			http.Redirect(w, r, routes.RoleSelection+"?error=Role+not+available", http.StatusSeeOther)
			return
		}

		s.state.SetActiveShiftCount(acc.ActiveShiftCount)
		target, err := s.guard.SelectRole(chosen)
		if err != nil {
			s.alerts.Warn("Please select a role to continue")
			http.Redirect(w, r, routes.RoleSelection+"?error=Select+a+role", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// OnboardingPageHandler is the shared stub for the linear onboarding
// screens; rendering belongs to the front end.
func (s *Server) OnboardingPageHandler(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"page": page})
	}
}

// HoursOfRestSubmitHandler advances an active controller to the
// area-of-responsibility step.
func (s *Server) HoursOfRestSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routes.AreaOfResponsibility, http.StatusSeeOther)
	}
}

// AreaSubmitHandler advances to the signature step.
func (s *Server) AreaSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routes.Signature, http.StatusSeeOther)
	}
}

// SignatureSubmitHandler uploads the signature and, on success, lets the
// guard compute the final landing and close onboarding. A rejected
// upload keeps the user on the signature step with an alert.
func (s *Server) SignatureSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, routes.Signature+"?error=Invalid+request", http.StatusSeeOther)
			return
		}
		dataURL := r.PostFormValue("signature")
		if dataURL == "" {
			s.alerts.Warn("Please draw a signature before continuing")
			http.Redirect(w, r, routes.Signature+"?error=Signature+required", http.StatusSeeOther)
			return
		}

		acc, err := s.currentAccount()
		if err != nil {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		if err := s.repos.Signatures.Upload(r.Context(), acc.ID, dataURL); err != nil {
			log.Warn().Err(err).Msg("signature upload failed")
			s.alerts.Error("Signature upload failed, please try again")
			http.Redirect(w, r, routes.Signature+"?error=Upload+failed", http.StatusSeeOther)
			return
		}

		s.shared.Set(storage.KeySignatureImage, dataURL)
		s.state.SetSignatureCached(true)

		http.Redirect(w, r, s.guard.CompleteSignature(), http.StatusSeeOther)
	}
}

// ObserverSelectionPageHandler lists the active controllers an Observer
// may view as.
func (s *Server) ObserverSelectionPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		controllers, err := s.repos.Accounts.ActiveControllers()
		if err != nil {
			s.alerts.Error("Could not load controller list")
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "controller list unavailable"})
			return
		}

		type entry struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		list := make([]entry, 0, len(controllers))
		for _, c := range controllers {
			list = append(list, entry{ID: c.ID, Name: c.Name})
		}
		writeJSON(w, http.StatusOK, map[string]any{"page": "observer-selection", "controllers": list})
	}
}

// ObserverSelectionSubmitHandler starts impersonation: a secondary token
// representing the chosen controller, independent of the primary
// session, then on to the signature step.
func (s *Server) ObserverSelectionSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, routes.ObserverSelection+"?error=Invalid+request", http.StatusSeeOther)
			return
		}

		controller, err := s.repos.Accounts.GetByID(r.PostFormValue("controller_id"))
		if err != nil || controller == nil || !controller.HasRole(role.ActiveController) {
			s.alerts.Error("Selected controller is not available")
			http.Redirect(w, r, routes.ObserverSelection+"?error=Controller+not+available", http.StatusSeeOther)
			return
		}

		acc, err := s.currentAccount()
		if err != nil {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		impersonateToken, err := s.mintToken(acc, controller.ID, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("minting impersonation token")
			s.alerts.Error("Could not start impersonation")
			http.Redirect(w, r, routes.ObserverSelection+"?error=Impersonation+failed", http.StatusSeeOther)
			return
		}

		s.tokens.SetImpersonateToken(impersonateToken)
		s.shared.Set(storage.KeyActiveControllerName, controller.Name)

		http.Redirect(w, r, routes.Signature, http.StatusSeeOther)
	}
}

// StopImpersonationHandler ends impersonation without touching the
// primary session.
func (s *Server) StopImpersonationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.tokens.ClearImpersonateToken()
		http.Redirect(w, r, routes.Dashboard, http.StatusSeeOther)
	}
}
