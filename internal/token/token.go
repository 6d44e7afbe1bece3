// Package token signs and verifies the JWT session tokens issued at login.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ryanj77/ResturauntBackend/types"
)

// Claims is the JWT payload carried by a session token. Subject holds the
// user ID; username and role ride along for consumers that do not want a
// store round trip.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Provider issues and parses HS256-signed session tokens.
type Provider struct {
	secret      []byte
	tokenTTL    time.Duration
	extendedTTL time.Duration
}

// NewProvider constructs a Provider. tokenTTL applies to standard sessions,
// extendedTTL to the extended ("remember me") class.
func NewProvider(secret string, tokenTTL, extendedTTL time.Duration) *Provider {
	return &Provider{
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		extendedTTL: extendedTTL,
	}
}

// Issue signs a token for the given user. The extended flag selects the
// longer lifetime class.
func (p *Provider) Issue(user types.User, extended bool) (string, error) {
	ttl := p.tokenTTL
	if extended {
		ttl = p.extendedTTL
	}

	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Parse validates a signed token string and returns its claims.
func (p *Provider) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	return claims, nil
}
