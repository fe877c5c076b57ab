package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/codemonk/internal/common"
)

const verificationPurpose = "email-verification"

// verificationClaims is the payload of the token handed out by
// /otp/verify-otp and required by /auth/register.
type verificationClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

func issueVerificationToken(email string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:   email,
		Purpose: verificationPurpose,
	})
	return token.SignedString(secret)
}

// emailFromVerificationToken returns the verified address, or
// common.ErrTokenExpired / common.ErrInvalidToken.
func emailFromVerificationToken(tokenString string, secret []byte, now time.Time) (string, error) {
	claims := &verificationClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Purpose != verificationPurpose || claims.Email == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Email, nil
}
