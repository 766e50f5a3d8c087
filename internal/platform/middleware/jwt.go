package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTValidator validates HMAC-signed bearer tokens issued by the identity
// provider.
type JWTValidator struct {
	signingKey []byte
}

// NewJWTValidator constructs a validator for the given signing key.
func NewJWTValidator(signingKey string) *JWTValidator {
	return &JWTValidator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies the token, returning its claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return &Claims{UserID: sub, Permissions: permissionsClaim(token.Claims)}, nil
}

// permissionsClaim reads the optional "permissions" claim. Tokens without one
// simply carry no permissions.
func permissionsClaim(claims jwt.Claims) []string {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	raw, ok := mapClaims["permissions"].([]any)
	if !ok {
		return nil
	}
	permissions := make([]string, 0, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok {
			permissions = append(permissions, s)
		}
	}
	return permissions
}
