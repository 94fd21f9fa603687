package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/golang-jwt/jwt/v4"
)

// время жизни токена (ротация секрета не поддерживается - все токены инвалидируются)
const tokenTTL = 72 * time.Hour

// IssueToken подписывает JWT (HS256) с id пользователя внутри.
// Секрет один на весь процесс - берется из JWT_SECRET
func IssueToken(userID uint) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает id пользователя
func ParseToken(tokenStr string) (uint, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, errors.New("JWT_SECRET is not set in environment")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, apperr.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.ErrInvalidToken
	}

	// числовые claims приходят как float64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, apperr.ErrInvalidToken
	}

	return uint(idFloat), nil
}
