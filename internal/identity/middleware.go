package identity

import (
	"net/http"

	"github.com/osse101/DeckBuilder_Go/internal/logger"
)

// Middleware moves the X-User-ID header into the request context. Requests
// without a valid user id are rejected with 401.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := NormalizeUserID(r.Header.Get(HeaderUserID))
		if err != nil {
			logger.FromContext(r.Context()).Warn("Request without user id", "path", r.URL.Path)
			http.Error(w, "Unauthorized: missing or invalid "+HeaderUserID, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}
