package ctxutil

import "context"

// userIDKeyType private key type to avoid collisions with other context keys
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// WithUserID injects the authenticated user id into the context.
// Intended for the auth middleware, after a JWT has been validated:
//
//	ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
//	c.Request = c.Request.WithContext(ctx)
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID extracts the user id from the context.
// The bool reports whether a non-empty user id was present.
func GetUserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(userIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
