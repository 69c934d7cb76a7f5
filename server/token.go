package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/shiftwatch/sessionguard/account"
)

// TokenClaims is what the dashboard cares about from a bearer token.
type TokenClaims struct {
	AccountID string   `json:"account_id"`
	Name      string   `json:"name"`
	Roles     []string `json:"roles"`

	// ActAs is set on impersonation tokens: the controller account the
	// Observer is viewing as.
	ActAs string `json:"act_as,omitempty"`
}

// mintToken signs an HS256 bearer token for the account. actAs is empty
// for primary tokens and carries the impersonated controller's id on
// impersonation tokens.
func (s *Server) mintToken(acc *account.Account, actAs string, now time.Time) (string, error) {
	roleNames := make([]string, 0, len(acc.Roles))
	for _, r := range acc.Roles {
		roleNames = append(roleNames, r.String())
	}

	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"name":  acc.Name,
		"roles": roleNames,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	if actAs != "" {
		claims["act_as"] = actAs
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.GetSigningSecret()))
	if err != nil {
		return "", errors.Wrap(err, "signing bearer token")
	}
	return signed, nil
}

// introspectToken validates a bearer token and extracts its claims.
func (s *Server) introspectToken(tokenString string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.GetSigningSecret()), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, errors.Wrap(err, "parsing bearer token")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	tc := &TokenClaims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		tc.AccountID = sub
	}
	if name, ok := mapClaims["name"].(string); ok {
		tc.Name = name
	}
	if actAs, ok := mapClaims["act_as"].(string); ok {
		tc.ActAs = actAs
	}
	if rawRoles, ok := mapClaims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if name, ok := raw.(string); ok {
				tc.Roles = append(tc.Roles, name)
			}
		}
	}
	return tc, nil
}

// currentAccount resolves the session's bearer token to its account.
func (s *Server) currentAccount() (*account.Account, error) {
	token := s.tokens.AuthToken()
	if token == "" {
		return nil, errors.New("no session token")
	}
	claims, err := s.introspectToken(token)
	if err != nil {
		return nil, err
	}
	return s.repos.Accounts.GetByID(claims.AccountID)
}
