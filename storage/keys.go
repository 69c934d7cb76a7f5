package storage

// Durable keys, one per persisted concern. Key names are part of the
// stored-state contract: renaming one orphans state written by earlier
// builds.
const (
	// KeyAuthToken holds the bearer credential (shared store).
	KeyAuthToken = "auth_token"

	// KeyRememberMe holds "true"/"false" (shared store).
	KeyRememberMe = "remember_me"

	// KeySelectedRole holds the role enum value (shared store).
	KeySelectedRole = "selected_role"

	// KeyOnboardingCompleted holds "true"/"false" (shared store).
	KeyOnboardingCompleted = "onboarding_completed"

	// KeyTabCount holds the open-tab counter as a decimal string
	// (shared store).
	KeyTabCount = "tab_count"

	// KeyTabID holds the per-tab identifier (tab store).
	KeyTabID = "tab_id"

	// KeyClosingTimestamp holds epoch millis of the moment the tab
	// counter reached zero (shared store).
	KeyClosingTimestamp = "closing_timestamp"

	// KeySignatureImage holds the cached signature as a data URL
	// (shared store).
	KeySignatureImage = "signature_image"

	// KeyActiveControllerName caches the display name of the controller
	// an Observer is viewing as (shared store).
	KeyActiveControllerName = "active_controller_name"

	// KeyImpersonateToken holds the secondary token used while an
	// Observer views as another controller (shared store).
	KeyImpersonateToken = "impersonate_token"

	// KeyDocumentViewMode holds the document repository view preference.
	// Not session state, but cleared alongside it on logout.
	KeyDocumentViewMode = "document_view_mode"
)

// CookieSelectedRole is the cookie mirror of KeySelectedRole.
const CookieSelectedRole = "selected_role"
