// internal/auth/context.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/VitaminP8/linkery/internal/apperr"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста.
// Это единственная проверка авторизации для защищенных мутаций
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, fmt.Errorf("%w: user ID not found in context", apperr.ErrNotAuthenticated)
	}
	return id, nil
}

// Для извлечения userID из JWT и помещения в context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
		if tokenStr == "" {
			next.ServeHTTP(w, r) // неавторизованный доступ — пропускаем
			return
		}

		if os.Getenv("JWT_SECRET") == "" {
			http.Error(w, "JWT secret not set", http.StatusInternalServerError)
			return
		}

		userID, err := ParseToken(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r) // если невалидный токен — пропускаем
			return
		}

		ctx := WithUserID(r.Context(), userID)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
