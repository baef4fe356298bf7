package middleware

import (
	"net/http"

	"driveschool-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity middleware reads the authenticated user id forwarded by the
// auth proxy in front of this service. Authentication itself happens
// upstream; this only puts the id on the request context.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("X-User-ID")
			if header == "" {
				utils.ResponseUnauthorized(w, "Missing user identity")
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				logger.Warn("Invalid user identity header", zap.String("value", header))
				utils.ResponseUnauthorized(w, "Invalid user identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
