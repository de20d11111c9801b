package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type Role string

const (
	RolePlayer Role = "player"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
)

// ParseRole maps stored role strings to a Role. Unknown values fall back to
// player, the least privileged role.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleCoach, RoleAdmin:
		return Role(raw)
	default:
		return RolePlayer
	}
}

type AuthUser struct {
	ID   int64
	Role Role
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

func IsAdmin(user *AuthUser) bool {
	return user != nil && user.Role == RoleAdmin
}

// RequireRole returns ErrUnauthenticated when ctx has no user and
// ErrForbidden when the user's role is not among roles.
func RequireRole(ctx context.Context, roles ...Role) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireOwnerOrAdmin permits admins and the user owning the resource.
func RequireOwnerOrAdmin(ctx context.Context, ownerID int64) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if user.Role == RoleAdmin || user.ID == ownerID {
		return nil
	}
	return ErrForbidden
}
