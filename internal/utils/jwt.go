package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/crm-gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidTokenParams is returned by GenerateJWTToken for empty inputs.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	// ErrInvalidTokenClaims is returned when a verified token lacks a subject
	// or carries an unknown scope.
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	// ErrInvalidAuthorizationHeader is returned by ParseBearerToken.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the upstream record ID of the employee
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - email, scope: see [models.SessionClaims]
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("crm-gateway", "3652397000000415001",
//	    "jane@example.com", models.ScopeSession, time.Hour, secret)
func GenerateJWTToken(issuer, subject, email string, scope models.TokenScope, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || subject == "" || tokenDuration <= 0 || signKey == "" || !scope.Valid() {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) presence and a known scope
//
// Expired tokens can be told apart with errors.Is(err, jwt.ErrTokenExpired).
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.SessionClaims, error) {
	var claims models.SessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.SessionClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.SessionClaims{}, fmt.Errorf("%w: empty subject", ErrInvalidTokenClaims)
	}
	if !claims.Scope.Valid() {
		return models.SessionClaims{}, fmt.Errorf("%w: unknown scope", ErrInvalidTokenClaims)
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
