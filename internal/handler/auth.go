package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/okibe-dev/okibe/internal/logger"
	"github.com/okibe-dev/okibe/internal/utils"
)

// Login exchanges staff credentials for an access token cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Login    string `validate:"required" json:"login"`
		Password string `validate:"required" json:"password"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	loginOk := subtle.ConstantTimeCompare([]byte(body.Login), []byte(h.cfg.Private.StaffLogin)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(h.cfg.Private.StaffPasswordHash), []byte(body.Password))
	if !loginOk || passwordErr != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwt.NewToken(body.Login)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	logger.Log.Info("staff login", "login", body.Login)
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JwtTTL()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusOK)
}
