package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/auth"
	"github.com/storeanalytics/sales-dashboard-go/internal/handler/http/response"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
)

// AuthRequired admits requests carrying a verified, unrevoked access token.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if tokenType != jwt.TypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(token.JwtID()) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
