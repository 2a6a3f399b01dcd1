package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
)

// CronSecret guards the manual cron trigger. The caller must present the
// configured shared secret in the X-Cron-Secret header.
func CronSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				response.Forbidden(w, "Cron trigger is disabled")
				return
			}

			presented := r.Header.Get("X-Cron-Secret")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				response.Unauthorized(w, "Invalid cron secret")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
