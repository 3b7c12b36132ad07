package services

import (
	"errors"
	"time"

	"pulsearena/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	SigninMethod string `json:"signin_method"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(user *models.UserFromAuth) (string, error) {
	claims := CustomClaims{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		SigninMethod: string(user.SigninMethod),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.UserFromAuth, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}
	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &models.UserFromAuth{
		ID:           claims.ID,
		Username:     claims.Username,
		Email:        claims.Email,
		SigninMethod: models.SigninMethod(claims.SigninMethod),
	}, nil
}
