package security

import "context"

type sessionTokenContextKey string

const tokenKey sessionTokenContextKey = "sessionToken"

// WithToken сохраняет токен сессии пользователя в контексте. Токен выдается
// внешним хранилищем идентификации, clubhost только передает его дальше
// в запросах к удаленным API.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext возвращает токен сессии пользователя из контекста.
func TokenFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(tokenKey)
	if val == nil {
		return "", false
	}

	return val.(string), true
}
