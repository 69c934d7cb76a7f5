package server

import (
	"github.com/shiftwatch/sessionguard/guard"
	"github.com/shiftwatch/sessionguard/routes"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("GET "+routes.Login, ChainMiddleware(s.LoginPageHandler(), s.Middleware(s.Guarded(guard.StepAuth, routes.Login))...))
	s.RegisterRouteFunc("POST "+routes.Login, ChainMiddleware(s.LoginSubmissionHandler(), s.Middleware()...))
	s.RegisterRouteFunc("POST /auth/logout", ChainMiddleware(s.LogoutHandler(), s.Middleware()...))

	// ONBOARDING
	s.RegisterRouteFunc("GET "+routes.RoleSelection, ChainMiddleware(s.RoleSelectionPageHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.RoleSelection))...))
	s.RegisterRouteFunc("POST "+routes.RoleSelection, ChainMiddleware(s.RoleSelectionSubmitHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.RoleSelection))...))
	s.RegisterRouteFunc("GET "+routes.HoursOfRest, ChainMiddleware(s.OnboardingPageHandler("hours-of-rest"), s.Middleware(s.Guarded(guard.StepOnboarding, routes.HoursOfRest))...))
	s.RegisterRouteFunc("POST "+routes.HoursOfRest, ChainMiddleware(s.HoursOfRestSubmitHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.HoursOfRest))...))
	s.RegisterRouteFunc("GET "+routes.AreaOfResponsibility, ChainMiddleware(s.OnboardingPageHandler("area-of-responsibility"), s.Middleware(s.Guarded(guard.StepOnboarding, routes.AreaOfResponsibility))...))
	s.RegisterRouteFunc("POST "+routes.AreaOfResponsibility, ChainMiddleware(s.AreaSubmitHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.AreaOfResponsibility))...))
	s.RegisterRouteFunc("GET "+routes.ObserverSelection, ChainMiddleware(s.ObserverSelectionPageHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.ObserverSelection))...))
	s.RegisterRouteFunc("POST "+routes.ObserverSelection, ChainMiddleware(s.ObserverSelectionSubmitHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.ObserverSelection))...))
	s.RegisterRouteFunc("GET "+routes.Signature, ChainMiddleware(s.OnboardingPageHandler("signature"), s.Middleware(s.Guarded(guard.StepOnboarding, routes.Signature))...))
	s.RegisterRouteFunc("POST "+routes.Signature, ChainMiddleware(s.SignatureSubmitHandler(), s.Middleware(s.Guarded(guard.StepOnboarding, routes.Signature))...))
	s.RegisterRouteFunc("POST /onboarding/impersonation/stop", ChainMiddleware(s.StopImpersonationHandler(), s.Middleware()...))

	// DASHBOARD
	s.RegisterRouteFunc("GET "+routes.Dashboard, ChainMiddleware(s.DashboardHandler(), s.Middleware(s.Guarded(guard.StepDashboard, routes.Dashboard))...))
	s.RegisterRouteFunc("GET "+routes.ShiftChange, ChainMiddleware(s.ShiftChangeHandler(), s.Middleware(s.Guarded(guard.StepDashboard, routes.ShiftChange))...))
	s.RegisterRouteFunc("GET "+routes.Companies, ChainMiddleware(s.CompaniesHandler(), s.Middleware(s.Guarded(guard.StepDashboard, routes.Companies))...))

	// API
	s.RegisterRouteFunc("GET /api/me", ChainMiddleware(s.MeHandler(), s.Middleware()...))
	s.RegisterRouteFunc("POST /api/tab/unload", ChainMiddleware(s.TabUnloadHandler(), s.Middleware()...))
	s.RegisterRouteFunc("POST /api/tab/focus", ChainMiddleware(s.TabFocusHandler(), s.Middleware()...))
}
