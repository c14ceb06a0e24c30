package middleware

import (
	"net/http"

	internal_errors "github.com/okibe-dev/okibe/internal/errors"
	"github.com/okibe-dev/okibe/internal/utils"
)

// Limiter is the slice of the cooldown gate the middleware needs.
type Limiter interface {
	Allow(key string) bool
}

// Cooldown throttles write endpoints per client IP.
func Cooldown(gate Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip, err := utils.GetIP(r)
			if err != nil {
				http.Error(w, "Cannot determine client address", http.StatusBadRequest)
				return
			}
			if !gate.Allow(ip) {
				utils.WriteErrorAndStatusCode(w, internal_errors.TooManyRequests("Please wait before you do that again"))
				return
			}
			next(w, r)
		}
	}
}
