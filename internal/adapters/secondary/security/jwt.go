package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// UserClaims étend les claims standards JWT
type UserClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTProvider signe et vérifie les tokens de session (HS256, secret partagé :
// un seul service signe et vérifie, pas besoin d'une paire de clefs).
type JWTProvider struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewJWTProvider(secret string, expiry time.Duration) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if expiry <= 0 {
		expiry = 15 * 24 * time.Hour
	}
	return &JWTProvider{
		secret: []byte(secret),
		expiry: expiry,
		issuer: "societify",
	}, nil
}

func (j *JWTProvider) Generate(user *domain.User) (string, error) {
	claims := UserClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Validate vérifie la signature et retourne l'UserID (Subject).
func (j *JWTProvider) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Empêche les attaques où l'attaquant force l'algo à "None" ou RSA
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", err // token expiré ou signature invalide
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims.Subject, nil
	}
	return "", errors.New("invalid token claims")
}
