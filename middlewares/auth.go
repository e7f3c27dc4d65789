package middlewares

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/auth"
	"github.com/TEJASTATODE/saas-notes/helper"
)

type AuthMiddleware struct {
	Resolver *auth.Resolver
	Logger   *zap.SugaredLogger
}

// RequireAuth resolves the bearer token into a live identity and stores it
// in the request context. All failure modes answer 401 with the same body.
func (am *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			helper.WriteJsonError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
			return
		}

		identity, err := am.Resolver.Resolve(r.Context(), raw)
		if err != nil {
			am.Logger.Debugf("token resolution failed: %v", err)
			helper.WriteJsonError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
