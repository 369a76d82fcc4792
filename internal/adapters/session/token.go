package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "ministry"

// ErrInvalidToken is returned for a cookie value that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the signed payload of the session cookie.
type Claims struct {
	Leader int `json:"leader"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies session cookies. The token only carries the
// session id; the session itself lives in a Store.
type Tokens struct {
	key []byte
	ttl time.Duration
}

// NewTokens creates a signer.
// PRE: len(key) >= 32
func NewTokens(key []byte, ttl time.Duration) *Tokens {
	return &Tokens{key: key, ttl: ttl}
}

// Issue signs a token for s.
// POST: the token's jti is s.ID
func (t *Tokens) Issue(s Session) (string, error) {
	claims := Claims{
		Leader: s.LeaderID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Issuer:    issuer,
			Subject:   strconv.Itoa(s.LeaderID),
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.CreatedAt.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Parse verifies raw and returns the session id it names.
// POST: Returns ErrInvalidToken for bad signatures, expiry or a missing id
func (t *Tokens) Parse(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
