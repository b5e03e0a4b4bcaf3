package middleware

import (
	"net/http"

	"github.com/ivanpodgorny/clubhost/internal/security"
)

// SessionToken возвращает middleware, передающий токен сессии пользователя
// из заголовка Authorization в контекст запроса. Токен не проверяется:
// его выдает и проверяет внешнее хранилище идентификации, clubhost лишь
// пересылает его в запросах к удаленным API. Запросы без токена отклоняются.
func SessionToken() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(security.WithToken(r.Context(), token)))
		})
	}
}
