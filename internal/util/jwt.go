package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/blogcraft/blogcraft/internal/config"
)

// tokenTTL is how long issued bearer tokens stay valid.
const tokenTTL = 7 * 24 * time.Hour

// GenerateToken issues a signed bearer token for the given user id.
func GenerateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken verifies a bearer token and returns the user id it carries.
func ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user id claim")
	}
	return userID, nil
}
