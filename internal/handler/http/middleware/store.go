package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/handler/http/response"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
)

// RequireStore rejects tokens that are not bound to a store.
func RequireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, sales.ErrStoreNotInClaims)
			return
		}

		storeID, ok := jwt.ClaimInt64(claims, jwt.ClaimStoreID)
		if !ok || storeID <= 0 {
			response.HandleError(w, sales.ErrStoreNotInClaims)
			return
		}

		next.ServeHTTP(w, r)
	})
}
