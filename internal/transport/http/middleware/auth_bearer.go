package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
)

// TokenValidator проверяет токен сессии (auth.Container).
type TokenValidator interface {
	ValidateToken(token string) (auth.Claims, error)
}

// AuthBearer проверяет Bearer-токен из Authorization и кладёт claims в контекст.
// Без заголовка запрос проходит как анонимный; битый или просроченный токен — 401.
func AuthBearer(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok || v == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.ValidateToken(token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только запросы с проверенным токеном.
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ClaimsFrom(r.Context()); !ok {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
