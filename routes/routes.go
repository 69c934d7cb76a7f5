// Package routes holds the route paths the navigation guard redirects
// between. Kept in one place so guard decisions, handlers, and tests
// agree on spellings.
package routes

const (
	// Login is the only route of the auth step.
	Login = "/auth/login"

	// Onboarding sub-steps, in the order a new user walks them.
	RoleSelection        = "/onboarding/role-selection"
	HoursOfRest          = "/onboarding/hours-of-rest"
	AreaOfResponsibility = "/onboarding/area-of-responsibility"
	ObserverSelection    = "/onboarding/observer-selection"
	Signature            = "/onboarding/signature"

	// Post-onboarding landings.
	Dashboard   = "/dashboard"
	ShiftChange = "/dashboard/shift-change"
	Companies   = "/admin/companies"
)
