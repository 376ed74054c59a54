package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
)

// AuthUseCaseInterface resolves a bearer credential into an actor
type AuthUseCaseInterface interface {
	Authenticate(ctx context.Context, credential string) (*auth.Actor, error)
	IsNoAuthn() bool
}

// AuthUseCase verifies OIDC ID tokens issued by the identity provider
// the HR portal fronts. Role and department scope travel as custom
// claims set by the provider.
type AuthUseCase struct {
	jwksURL  string
	issuer   string
	audience string
	keys     *jwk.Cache
}

// NewAuthUseCase creates an ID-token verifier backed by a refreshing
// JWKS cache.
func NewAuthUseCase(ctx context.Context, jwksURL, issuer, audience string) (*AuthUseCase, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, goerr.Wrap(err, "failed to register JWKS endpoint", goerr.V("jwks_url", jwksURL))
	}

	return &AuthUseCase{
		jwksURL:  jwksURL,
		issuer:   issuer,
		audience: audience,
		keys:     cache,
	}, nil
}

// Authenticate parses and verifies an ID token and maps its claims to
// an actor.
func (uc *AuthUseCase) Authenticate(ctx context.Context, credential string) (*auth.Actor, error) {
	keySet, err := uc.keys.Get(ctx, uc.jwksURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch JWKS", goerr.V("jwks_url", uc.jwksURL))
	}

	// Allow 10 seconds of clock skew to handle time synchronization differences
	token, err := jwt.Parse([]byte(credential),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(uc.issuer),
		jwt.WithAudience(uc.audience),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrAccessDenied, "failed to parse or verify ID token")
	}

	sub := token.Subject()
	if sub == "" {
		return nil, goerr.Wrap(ErrAccessDenied, "sub claim not found in token")
	}

	email := stringClaim(token, "email")
	name := stringClaim(token, "name")

	roleClaim := stringClaim(token, "role")
	role, err := types.ParseRole(roleClaim)
	if err != nil {
		return nil, goerr.Wrap(ErrAccessDenied, "role claim missing or unknown", goerr.V("role", roleClaim))
	}

	if role == types.RoleHR {
		return auth.NewHRActor(sub, email, name), nil
	}

	departmentID, err := int64Claim(token, "department_id")
	if err != nil {
		return nil, goerr.Wrap(ErrAccessDenied, "department actor has no department_id claim")
	}

	return auth.NewDepartmentActor(sub, email, name, departmentID), nil
}

// IsNoAuthn returns false for real token verification
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func stringClaim(token jwt.Token, name string) string {
	val, ok := token.Get(name)
	if !ok {
		return ""
	}
	s, _ := val.(string)
	return s
}

func int64Claim(token jwt.Token, name string) (int64, error) {
	val, ok := token.Get(name)
	if !ok {
		return 0, goerr.New("claim not found", goerr.V("claim", name))
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, goerr.Wrap(err, "claim is not an integer", goerr.V("claim", name))
		}
		return parsed, nil
	default:
		return 0, goerr.New("claim has unexpected type", goerr.V("claim", name), goerr.V("value", val))
	}
}
