package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
)

// Actor is an already-authenticated identity. The transport layer is
// responsible for authentication; the core trusts this identity and
// enforces only department scoping.
type Actor struct {
	Sub   string
	Email string
	Name  string
	Role  types.Role
	// DepartmentID scopes a department actor to its own checklists.
	// Zero for HR actors.
	DepartmentID int64
}

// NewHRActor creates an HR actor
func NewHRActor(sub, email, name string) *Actor {
	return &Actor{
		Sub:   sub,
		Email: email,
		Name:  name,
		Role:  types.RoleHR,
	}
}

// NewDepartmentActor creates an actor scoped to one department
func NewDepartmentActor(sub, email, name string, departmentID int64) *Actor {
	return &Actor{
		Sub:          sub,
		Email:        email,
		Name:         name,
		Role:         types.RoleDepartment,
		DepartmentID: departmentID,
	}
}

// NewAnonymousActor creates an HR actor with a generated subject, used
// when the service runs without authentication.
func NewAnonymousActor() *Actor {
	return NewHRActor("anonymous-"+uuid.NewString(), "", "Anonymous")
}

// CanActFor reports whether the actor may operate on the given
// department's checklist. HR reads everything; a department actor is
// restricted to its own department.
func (a *Actor) CanActFor(departmentID int64) bool {
	if a == nil {
		return true
	}
	if a.Role == types.RoleHR {
		return true
	}
	return a.DepartmentID == departmentID
}

// IsHR reports whether the actor holds the HR role
func (a *Actor) IsHR() bool {
	return a == nil || a.Role == types.RoleHR
}

type contextKey struct{}

// ContextWithActor attaches the actor to the context
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// ActorFromContext retrieves the actor from the context, or nil when
// the request was not authenticated.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(contextKey{}).(*Actor)
	return actor
}
