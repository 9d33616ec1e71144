package service

import (
	"errors"
	"time"

	"evidentia/backend/common"
	"evidentia/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

func newClaims(user *model.User, duration time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "evidentia",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
}

func signToken(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(user *model.User) (string, error) {
	return signToken(newClaims(user, common.JWTAccessTokenDuration), common.JWTSecret)
}

// ValidateToken parses and verifies an access token.
func ValidateToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, common.JWTSecret)
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func GenerateRefreshToken(user *model.User) (string, error) {
	return signToken(newClaims(user, common.JWTRefreshTokenDuration), common.JWTRefreshSecret)
}

// ValidateRefreshToken parses and verifies a refresh token.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, common.JWTRefreshSecret)
}
