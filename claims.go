package registry

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims for an authenticated owner.
type AuthClaims interface {
	Subject() string
	OwnerID() string
	Email() string
	Profile() OwnerProfile
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The token carries
// the owner's public profile and never the password hash.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID          string       `json:"uid,omitempty"`
	OwnerProfile OwnerProfile `json:"profile,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// OwnerID returns the owner ID
func (c *JWTClaims) OwnerID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the owner's email as carried by the token
func (c *JWTClaims) Email() string {
	return c.OwnerProfile.Email
}

// Profile returns the public profile embedded in the token
func (c *JWTClaims) Profile() OwnerProfile {
	return c.OwnerProfile
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
