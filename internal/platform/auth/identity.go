package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role is the single enumerated attribute on a user that drives every
// authorization decision.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller. It is resolved once per request by
// the token middleware and threaded explicitly through every policy check
// and service call; policy code never reaches for ambient request state.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsStaff reports whether the caller has administrative rights.
func (i Identity) IsStaff() bool { return i.Role == RoleAdmin }

type contextKey string

const identityKey contextKey = "auth_identity"

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity set by the token
// middleware. ok is false for unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
