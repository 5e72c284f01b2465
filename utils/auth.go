package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"storefront/models"
)

// JWT Secret Key, replaced from JWT_SECRET at startup
var JwtKey = []byte("your_secret_key")

// TokenTTL is how long an issued token stays valid
var TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// User returns the customer the token was issued to.
func (c *Claims) User() models.User {
	return models.User{ID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}

// GenerateJWT generates a JWT token for a user
func GenerateJWT(user models.User) (string, error) {
	expirationTime := time.Now().Add(TokenTTL)
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates tokenStr and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return JwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
