package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

type SessionObject struct {
	OwnerID        string       `json:"owner_id,omitempty"`
	Audience       []string     `json:"audience,omitempty"`
	Issuer         string       `json:"issuer,omitempty"`
	IssuedAt       *time.Time   `json:"issued_at,omitempty"`
	ExpirationDate *time.Time   `json:"expiration_date,omitempty"`
	Profile        OwnerProfile `json:"profile,omitempty"`
}

func (s *SessionObject) GetOwnerID() string {
	return s.OwnerID
}

func (s *SessionObject) GetOwnerUUID() (uuid.UUID, error) {
	return uuid.Parse(s.OwnerID)
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetProfile() OwnerProfile {
	return s.Profile
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"owner=%s aud=%v iss=%s iat=%s",
		s.OwnerID,
		s.Audience,
		s.Issuer,
		issuedAt,
	)
}

// sessionFromAuthClaims creates a SessionObject from validated claims
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	var audience []string
	var issuer string
	if jwtClaims, ok := claims.(*JWTClaims); ok {
		for _, aud := range jwtClaims.RegisteredClaims.Audience {
			audience = append(audience, aud)
		}
		issuer = jwtClaims.RegisteredClaims.Issuer
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		OwnerID:        claims.OwnerID(),
		Audience:       audience,
		Issuer:         issuer,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
		Profile:        claims.Profile(),
	}, nil
}
