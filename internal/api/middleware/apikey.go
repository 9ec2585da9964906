package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

// TimeTokenWindow is how long a generated time token stays valid. The token of
// the previous window is accepted as well to absorb clock skew.
const TimeTokenWindow = 5 * time.Minute

// GenerateTimeToken derives the time token for the current window from key.
func GenerateTimeToken(key string) string {
	return timeToken(key, time.Now())
}

func timeToken(key string, t time.Time) string {
	window := t.Unix() / int64(TimeTokenWindow/time.Second)
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(strconv.FormatInt(window, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

func validTimeToken(key, token string) bool {
	now := time.Now()
	for _, t := range []time.Time{now, now.Add(-TimeTokenWindow)} {
		if hmac.Equal([]byte(timeToken(key, t)), []byte(token)) {
			return true
		}
	}
	return false
}

// RequireAPIKey protects maintenance endpoints with the configured key.
// Clients send the key in X-API-Key and a token from GenerateTimeToken in
// X-Time-Token. An empty key rejects every request.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return apiKey(next, key)
	}
}

func apiKey(next http.Handler, expected string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication failed", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Invalid API key")
			return
		}

		token := r.Header.Get("X-Time-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing Time token")
			return
		}
		if !validTimeToken(expected, token) {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
