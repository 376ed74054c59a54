package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
)

// AuthUseCase resolves a bearer credential into an actor
type AuthUseCase interface {
	Authenticate(ctx context.Context, credential string) (*auth.Actor, error)
	IsNoAuthn() bool
}

// Development-mode headers let requests pick an actor when the server
// runs without authentication.
const (
	headerActorRole       = "X-Actor-Role"
	headerActorDepartment = "X-Actor-Department"
)

// authMiddleware validates authentication for protected requests
func authMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For NoAuthn mode or when authUC is not configured, derive the
			// actor from development headers, defaulting to anonymous HR
			if authUC == nil || authUC.IsNoAuthn() {
				actor := actorFromDevHeaders(r)
				ctx := auth.ContextWithActor(r.Context(), actor)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			credential, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			actor, err := authUC.Authenticate(r.Context(), credential)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func actorFromDevHeaders(r *http.Request) *auth.Actor {
	role, err := types.ParseRole(r.Header.Get(headerActorRole))
	if err != nil {
		return auth.NewAnonymousActor()
	}

	if role == types.RoleHR {
		return auth.NewHRActor("dev-hr", "", "Dev HR")
	}

	departmentID, err := strconv.ParseInt(r.Header.Get(headerActorDepartment), 10, 64)
	if err != nil {
		return auth.NewAnonymousActor()
	}

	return auth.NewDepartmentActor("dev-department", "", "Dev Department", departmentID)
}
