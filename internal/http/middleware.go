package http

import (
	"context"
	"net/http"
)

type contextKey string

const ownerKey contextKey = "owner_id"

// DefaultOwner is the single implicit shopper identity. All cart and
// receipt state is still keyed by owner so a real identity source can
// replace this middleware without touching the services.
const DefaultOwner = "mock-user"

// OwnerMiddleware resolves the shopper identity for the request. An
// X-Shopper-ID header overrides the implicit single-shopper default.
func OwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get("X-Shopper-ID")
		if owner == "" {
			owner = DefaultOwner
		}

		ctx := context.WithValue(r.Context(), ownerKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerKey).(string); ok && owner != "" {
		return owner
	}
	return DefaultOwner
}
