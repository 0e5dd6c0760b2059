package middleware

import (
	"net/http"

	"github.com/awoyaledolapo/clytix-1/internal/utils"
)

// RequireAuth blocks when no identity is present in context (set by
// WithAuth). This is the redirect boundary of the protected area: the
// SPA navigates to the login surface on a 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
