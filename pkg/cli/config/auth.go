package config

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for ID token verification
type Auth struct {
	jwksURL  string
	issuer   string
	audience string
	noAuthn  bool
}

// Flags returns CLI flags for authentication configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwks-url",
			Usage:       "JWKS endpoint of the identity provider",
			Category:    "Authentication",
			Sources:     cli.EnvVars("EXITCLEAR_AUTH_JWKS_URL"),
			Destination: &a.jwksURL,
		},
		&cli.StringFlag{
			Name:        "auth-issuer",
			Usage:       "Expected iss claim of ID tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("EXITCLEAR_AUTH_ISSUER"),
			Destination: &a.issuer,
		},
		&cli.StringFlag{
			Name:        "auth-audience",
			Usage:       "Expected aud claim of ID tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("EXITCLEAR_AUTH_AUDIENCE"),
			Destination: &a.audience,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and treat every request as HR (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("EXITCLEAR_NO_AUTH"),
			Destination: &a.noAuthn,
		},
	}
}

// IsNoAuthMode returns true when authentication is disabled
func (a *Auth) IsNoAuthMode() bool {
	return a.noAuthn
}

// Configure builds the authentication use case from the flags
func (a *Auth) Configure(ctx context.Context) (usecase.AuthUseCaseInterface, error) {
	if a.noAuthn {
		return usecase.NewNoAuthnUseCase(), nil
	}

	if a.jwksURL == "" || a.issuer == "" || a.audience == "" {
		return nil, goerr.New("auth-jwks-url, auth-issuer and auth-audience are required unless --no-auth is set")
	}

	return usecase.NewAuthUseCase(ctx, a.jwksURL, a.issuer, a.audience)
}
