package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxAccessID  contextKey = "access_id"
	ctxCartToken contextKey = "cart_token"
)

// WithUserID stores the authenticated user's id on the request context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserID, id)
}

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

// WithRole stores the authenticated user's role on the request context.
func WithRole(ctx context.Context, role enums.UserRole) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}

// RoleFromContext returns the authenticated user's role, if any.
func RoleFromContext(ctx context.Context) (enums.UserRole, bool) {
	role, ok := ctx.Value(ctxRole).(enums.UserRole)
	return role, ok
}

// WithAccessID stores the session id of the presented token so logout can
// revoke it.
func WithAccessID(ctx context.Context, accessID string) context.Context {
	return context.WithValue(ctx, ctxAccessID, accessID)
}

// AccessIDFromContext returns the session id of the presented token, if any.
func AccessIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxAccessID).(string)
	return id, ok
}

// WithCartToken stores the visitor's cart token on the request context.
func WithCartToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxCartToken, token)
}

// CartTokenFromContext returns the visitor's cart token, if any.
func CartTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxCartToken).(string)
	return token, ok
}
