package dispatch

import "context"

type sessionIDKey struct{}

// ContextWithSessionID attaches the caller's session identifier to the
// context. The dispatcher only forwards it to the session store; it never
// inspects the session itself.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session identifier attached by
// ContextWithSessionID, or the empty string when none is present. An empty
// identifier makes the session store allocate a fresh session.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}
