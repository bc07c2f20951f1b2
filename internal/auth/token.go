// Package auth issues and checks the access tokens that guard write requests.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// Issuer is the issuer of every access token.
	Issuer = "biblioteca"
	// KeyID is the key id of the signing secret.
	KeyID = "v1"
	// AccessTokenAudienceName is the audience name of the access token.
	AccessTokenAudienceName = "biblioteca.api"
	// AccessTokenDuration is the default lifetime of an access token.
	AccessTokenDuration = 7 * 24 * time.Hour
)

type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for subject. A zero expireTime yields a
// token that never expires.
func GenerateAccessToken(subject string, expireTime time.Time, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is not set")
	}
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		Audience: jwt.ClaimStrings{AccessTokenAudienceName},
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  subject,
	}
	if !expireTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expireTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             subject,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return tokenString, nil
}

// ParseAccessToken validates accessToken and returns its subject.
func ParseAccessToken(accessToken string, secret []byte) (string, error) {
	if accessToken == "" {
		return "", errors.New("no access token provided")
	}
	claims := &ClaimsMessage{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != KeyID {
			return nil, errors.New("unexpected key id")
		}
		return secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(AccessTokenAudienceName),
	)
	if err != nil {
		return "", errors.Wrap(err, "invalid or expired access token")
	}
	return claims.Subject, nil
}
