package registry

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// AppConfig carries the runtime configuration, loaded from the environment.
type AppConfig struct {
	DatabaseURL     string   `env:"DATABASE_URL,required"`
	SigningKey      string   `env:"JWT_SECRET,required"`
	SigningMethod   string   `env:"JWT_SIGNING_METHOD" envDefault:"HS256"`
	ContextKey      string   `env:"JWT_CONTEXT_KEY" envDefault:"owner"`
	TokenExpiration int      `env:"JWT_TOKEN_EXPIRATION" envDefault:"24"`
	TokenLookup     string   `env:"JWT_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"JWT_AUTH_SCHEME" envDefault:"Bearer"`
	Issuer          string   `env:"JWT_ISSUER" envDefault:"integrado-back"`
	Audience        []string `env:"JWT_AUDIENCE" envDefault:"integrado"`
	HTTPAddr        string   `env:"HTTP_ADDR" envDefault:":8000"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse environment configuration")
	}
	return cfg, nil
}

func (c *AppConfig) GetSigningKey() string    { return c.SigningKey }
func (c *AppConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *AppConfig) GetContextKey() string    { return c.ContextKey }
func (c *AppConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *AppConfig) GetTokenLookup() string   { return c.TokenLookup }
func (c *AppConfig) GetAuthScheme() string    { return c.AuthScheme }
func (c *AppConfig) GetIssuer() string        { return c.Issuer }
func (c *AppConfig) GetAudience() []string    { return c.Audience }
