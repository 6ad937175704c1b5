package middleware

import (
	"context"
	"net/http"
	"strings"

	"thoughts-backend/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity creates a middleware that derives the caller's identity from the
// Authorization header. A missing, malformed, invalid, or expired credential
// is NOT an error: the request proceeds with an empty identity and each
// resolver decides its own authorization. Public and authenticated
// operations share one entry point because of this.
func Identity(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := codec.Verify(parts[1])
			if err != nil {
				// Unverifiable credentials are treated as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom extracts the caller's identity from context; nil means the
// request is anonymous.
func IdentityFrom(ctx context.Context) *token.Identity {
	identity, ok := ctx.Value(identityKey).(*token.Identity)
	if !ok {
		return nil
	}
	return identity
}
