package usecase

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
)

// NoAuthnUseCase skips token verification and hands every request an
// anonymous HR actor (for development/testing). The HTTP layer lets
// requests override role and department via headers in this mode.
type NoAuthnUseCase struct{}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance
func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

// Authenticate always returns an anonymous HR actor
func (uc *NoAuthnUseCase) Authenticate(ctx context.Context, credential string) (*auth.Actor, error) {
	return auth.NewAnonymousActor(), nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
