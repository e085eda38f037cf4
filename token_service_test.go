package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "github.com/MiotoIntelligentApplications/integrado-back"
)

type stubIdentity struct {
	id    string
	email string
}

func (s stubIdentity) ID() string    { return s.id }
func (s stubIdentity) Email() string { return s.email }

func (s stubIdentity) Profile() registry.OwnerProfile {
	return registry.OwnerProfile{
		ID:       s.id,
		Email:    s.email,
		Document: "12345678900",
		City:     "Curitiba",
		State:    "PR",
	}
}

func newTestTokenService(expirationHours int) registry.TokenService {
	return registry.NewTokenService(
		[]byte("test-signing-key"),
		expirationHours,
		"test-issuer",
		[]string{"test-audience"},
		nil,
	)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(24)

	identity := stubIdentity{id: "owner-123", email: "owner@example.com"}

	token, err := svc.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "owner-123", claims.OwnerID())
	assert.Equal(t, "owner-123", claims.Subject())
	assert.Equal(t, "owner@example.com", claims.Email())

	profile := claims.Profile()
	assert.Equal(t, "12345678900", profile.Document)
	assert.Equal(t, "Curitiba", profile.City)

	assert.True(t, claims.Expires().After(time.Now()), "token should carry a future expiry")
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
}

func TestTokenService_GenerateNilIdentity(t *testing.T) {
	svc := newTestTokenService(24)

	_, err := svc.Generate(nil)
	assert.Error(t, err)
}

func TestTokenService_ValidateExpiredToken(t *testing.T) {
	svc := newTestTokenService(-1)

	token, err := svc.Generate(stubIdentity{id: "owner-123", email: "owner@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, registry.IsTokenExpiredError(err))
}

func TestTokenService_ValidateWrongKey(t *testing.T) {
	svc := newTestTokenService(24)

	token, err := svc.Generate(stubIdentity{id: "owner-123", email: "owner@example.com"})
	require.NoError(t, err)

	other := registry.NewTokenService(
		[]byte("a-different-key"),
		24,
		"test-issuer",
		[]string{"test-audience"},
		nil,
	)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_ValidateWrongIssuer(t *testing.T) {
	svc := newTestTokenService(24)

	token, err := svc.Generate(stubIdentity{id: "owner-123", email: "owner@example.com"})
	require.NoError(t, err)

	other := registry.NewTokenService(
		[]byte("test-signing-key"),
		24,
		"someone-else",
		[]string{"test-audience"},
		nil,
	)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_ValidateGarbage(t *testing.T) {
	svc := newTestTokenService(24)

	_, err := svc.Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, registry.IsMalformedError(err))
}
