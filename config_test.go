package registry_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "github.com/MiotoIntelligentApplications/integrado-back"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:?cache=shared")
	t.Setenv("JWT_SECRET", "super-secret")

	cfg, err := registry.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "file::memory:?cache=shared", cfg.DatabaseURL)
	assert.Equal(t, "super-secret", cfg.GetSigningKey())

	// defaults
	assert.Equal(t, "HS256", cfg.GetSigningMethod())
	assert.Equal(t, "owner", cfg.GetContextKey())
	assert.Equal(t, 24, cfg.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Equal(t, []string{"integrado"}, cfg.GetAudience())
	assert.Equal(t, ":8000", cfg.HTTPAddr)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:registry.db")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_TOKEN_EXPIRATION", "72")
	t.Setenv("JWT_ISSUER", "custom-issuer")
	t.Setenv("HTTP_ADDR", ":9000")

	cfg, err := registry.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.GetTokenExpiration())
	assert.Equal(t, "custom-issuer", cfg.GetIssuer())
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	// t.Setenv registers the restore, Unsetenv makes the var truly absent
	t.Setenv("DATABASE_URL", "placeholder")
	t.Setenv("JWT_SECRET", "placeholder")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := registry.LoadConfig()
	assert.Error(t, err)
}
