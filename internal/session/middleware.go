package session

import (
	"context"
	"net/http"
	"time"
)

// CookieName carries the signed identity token.
const CookieName = "cp_session"

type ctxKey struct{}

// UserID returns the session user ID attached by Middleware, or "".
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

// Middleware ensures every request carries a session identity: a valid
// cookie is reused, anything else (absent, expired, tampered) gets a fresh
// user ID and a new cookie. The user ID is attached to the request context.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string
			if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
				if sub, err := svc.Parse(c.Value); err == nil {
					userID = sub
				}
			}
			if userID == "" {
				userID = NewUserID()
				if tok, err := svc.Issue(userID); err == nil {
					http.SetCookie(w, &http.Cookie{
						Name:     CookieName,
						Value:    tok,
						Path:     "/",
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
						Expires:  time.Now().Add(svc.TTL()),
					})
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
		})
	}
}
