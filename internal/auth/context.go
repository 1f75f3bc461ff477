package auth

import "context"

type storeContextKey struct{}
type identityContextKey struct{}

// ContextWithStore attaches the request's session store to the context.
func ContextWithStore(ctx context.Context, store *SessionStore) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

// StoreFromContext extracts the session store from the context.
func StoreFromContext(ctx context.Context) *SessionStore {
	store, _ := ctx.Value(storeContextKey{}).(*SessionStore)
	return store
}

// ContextWithIdentity attaches an identity resolved outside the session
// store, such as from a bearer token.
func ContextWithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext returns the current identity, or nil when the request
// is unauthenticated or still restoring. A token-resolved identity takes
// precedence over the session store.
func IdentityFromContext(ctx context.Context) *Identity {
	if ident, ok := ctx.Value(identityContextKey{}).(*Identity); ok && ident != nil {
		return ident
	}
	store := StoreFromContext(ctx)
	if store == nil {
		return nil
	}
	return store.Current()
}
