package middleware

import (
	"context"
	"log"
	"net/http"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/okibe-dev/okibe/internal/jwt"
	"github.com/okibe-dev/okibe/internal/utils"
)

// Key to store the staff claims in the request context
type key int

const staffLoginKey key = 0

// StaffOnly gates moderation endpoints behind a valid staff token.
func StaffOnly(jwtService *jwt.Jwt) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessCookie, err := r.Cookie("accessToken")
			if err == http.ErrNoCookie {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			} else if err != nil {
				log.Print(err)
				// this error shouldnt happen
				http.Error(w, "Invalid cookie", http.StatusInternalServerError)
				return
			}

			token, err := jwtService.DecodeToken(accessCookie.Value)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims := token.Claims.(jwtlib.MapClaims)

			isAdmin, ok := claims["admin"].(bool)
			if !ok || !isAdmin {
				http.Error(w, "Access denied. Staff only", http.StatusForbidden)
				return
			}

			login, _ := claims["login"].(string)
			ctx := context.WithValue(r.Context(), staffLoginKey, login)
			next(w, r.WithContext(ctx))
		}
	}
}

// GetStaffLogin returns the authenticated staff login, empty when the request
// did not pass StaffOnly.
func GetStaffLogin(r *http.Request) string {
	login, _ := r.Context().Value(staffLoginKey).(string)
	return login
}
