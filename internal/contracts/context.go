package contracts

import "context"

type credentialKey struct{}

// WithCredential returns a context carrying the caller's credential, for
// request-scoped token sourcing on the HTTP path.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

// ContextTokenSource reads the credential from the context. Used by the HTTP
// handlers, where each request carries its own bearer token; the client-side
// controllers use the session store instead.
type ContextTokenSource struct{}

func (ContextTokenSource) Get(ctx context.Context) (string, error) {
	if cred, ok := ctx.Value(credentialKey{}).(string); ok && cred != "" {
		return cred, nil
	}
	return "", ErrNoAuthToken
}
