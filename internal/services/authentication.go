package services

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"jumble/internal/models"
)

type CustomClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(user *models.UserFromAuth) (string, error) {
	claims := jwt.MapClaims{
		"id":            user.ID,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_bot":        user.IsBot,
		"is_premium":    user.IsPremium,
		"language_code": user.LanguageCode,
		"photo_url":     user.PhotoURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

// ValidateInitData satisfies the same verifier shape as Bot so either
// can back the authentication middleware.
func (authentication *Authentication) ValidateInitData(token string) (*models.UserFromAuth, error) {
	return authentication.Validate(token)
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
		ID:       claims.ID,
		Username: claims.Username,
	}, nil
}
