package config

type Auth struct{}

var _ AuthConfig = Auth{}

// GetSigningSecret returns the HS256 secret the demo login signs bearer
// tokens with. The default exists for local development only.
func (Auth) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "dev-only-secret")
}

// GetTokenExpiry returns the bearer token lifetime as a Go duration
// string.
func (Auth) GetTokenExpiry() string {
	return GetEnv("TOKEN_EXPIRY", "12h")
}
