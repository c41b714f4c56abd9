// Package auth verifies HS256 bearer tokens issued by the resident portal and
// puts the caller's user id into the request context.
package auth

import (
	"context"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the portal stores the access token in.
const CookieName = "access_token"

var (
	ErrNoToken      = errors.New("authorization token missing")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}

func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		log.Info("auth middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			claims, err := Parse(tokenFromRequest(r), []byte(secret))
			if err != nil {
				log.Warn("request rejected",
					slog.String("path", r.URL.Path),
					sl.Err(err),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(unauthorizedMessage(err)))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		}

		return http.HandlerFunc(fn)
	}
}

// Parse validates an HS256 token and returns its claims. The token must carry
// an expiry and a positive user id.
func Parse(token string, secret []byte) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !t.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, ErrNoToken) {
		return ErrNoToken.Error()
	}

	return ErrInvalidToken.Error()
}
