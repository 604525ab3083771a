package directus

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token has no expiry")

// TokenExpiry reads the exp claim of an access token without verifying its
// signature.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp: %w", err)
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

// TokenExpired reports whether token is unusable at now. Tokens that cannot
// be parsed count as expired; tokens without exp never expire.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if errors.Is(err, errNoExpiry) {
		return false
	}
	if err != nil {
		return true
	}
	return !now.Before(exp)
}
