package server

import (
	"net/http"
	"strconv"

	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/tablife"
)

// DashboardHandler is the main landing stub. The impersonation banner
// fields demonstrate what the front end needs: who the Observer is
// viewing as, if anyone.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"page": "dashboard",
			"role": s.state.SelectedRole().String(),
		}
		if name, ok := s.shared.Get(storage.KeyActiveControllerName); ok {
			payload["viewingAs"] = name
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func (s *Server) ShiftChangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"page":             "shift-change",
			"activeShiftCount": s.state.ActiveShiftCount(),
		})
	}
}

// CompaniesHandler is administrator-only. The visibility gate is the
// last line: even if a route slips past the step guard, a non-admin
// session sees nothing.
func (s *Server) CompaniesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.gate.Visible(role.Administrator) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"page": "companies"})
	}
}

// TabUnloadHandler forwards a client unload signal into the tab
// tracker. The front end reports the navigation type it read from the
// performance timing API; absence reports as "unknown" and counts as a
// close.
func (s *Server) TabUnloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		navType := tablife.NavigateUnknown
		switch r.PostFormValue("navigation_type") {
		case "reload":
			navType = tablife.NavigateReload
		case "navigate":
			navType = tablife.NavigateNew
		case "back_forward":
			navType = tablife.NavigateBackForward
		}
		persisted, _ := strconv.ParseBool(r.PostFormValue("persisted"))

		s.tracker.HandleUnload(tablife.Navigation{Type: navType, Persisted: persisted})
		w.WriteHeader(http.StatusNoContent)
	}
}

// TabFocusHandler forwards a client focus signal: some tab is alive, so
// any closing marker is stale.
func (s *Server) TabFocusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.tracker.HandleFocus()
		w.WriteHeader(http.StatusNoContent)
	}
}
