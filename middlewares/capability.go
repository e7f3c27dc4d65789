package middlewares

import (
	"net/http"

	"github.com/TEJASTATODE/saas-notes/auth"
	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/helper"
)

// RequireCapability gates a handler behind an identity capability. Must run
// after RequireAuth; authentication always precedes authorization.
func RequireCapability(cap auth.Capability) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentityFromContext(r.Context())
			if err := auth.Require(identity, cap); err != nil {
				helper.WriteJsonError(w, errs.HTTPStatus(err), errs.Message(err))
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
