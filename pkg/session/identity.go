package session

import (
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Identity is the signed in user as described by an identity provider token.
// The zero value is the signed out state.
type Identity struct {
	Subject   string   `json:"sub" yaml:"sub"`
	Email     string   `json:"email,omitempty" yaml:"email,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Picture   string   `json:"picture,omitempty" yaml:"picture,omitempty"`
	Issuer    string   `json:"iss,omitempty" yaml:"iss,omitempty"`
	IssuedAt  utc.Time `json:"iat" yaml:"iat"`
	ExpiresAt utc.Time `json:"exp" yaml:"exp"`
}

// SignedIn reports whether the identity names a user.
func (id Identity) SignedIn() bool {
	return id.Subject != ""
}

// Expired reports whether the token had expired at now. Tokens without an
// expiry never expire.
func (id Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt.Time)
}

// DisplayName returns the best available label for the user.
func (id Identity) DisplayName() string {
	switch {
	case id.Name != "":
		return id.Name
	case id.Email != "":
		return id.Email
	}
	return id.Subject
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ParseIdentity decodes an ID token issued by the identity provider. The
// signature is not verified; the token only personalises the session.
func ParseIdentity(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, errors.NewValidationError("id_token", "", "empty token")
	}

	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, errors.WrapParse("jwt", "id_token", err)
	}
	if claims.Subject == "" {
		return Identity{}, errors.NewValidationError("sub", "", "token has no subject")
	}

	id := Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = utc.Time{Time: claims.IssuedAt.UTC()}
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = utc.Time{Time: claims.ExpiresAt.UTC()}
	}
	return id, nil
}
