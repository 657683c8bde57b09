package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

var claimParser = &jwt.Parser{}

// BearerToken returns the token carried by an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("invalid Authorization header")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

// ReadClaims decodes the claims of a token whose signature was checked upstream.
func ReadClaims(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := claimParser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ClaimString returns the first non-blank string claim among keys.
func ClaimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
