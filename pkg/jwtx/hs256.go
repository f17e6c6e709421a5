package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign session claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrNoSecret   = errors.New("jwtx: signing secret must not be empty")
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
)

// HS256 signs and verifies session tokens with a single shared HMAC secret.
// Issuance and verification live in the same process, so a symmetric key is
// enough; the token format stays a plain interoperable JWT.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 returns a signer/verifier for the given secret. The issuer, when
// non-empty, is stamped into issued tokens and enforced on verification.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact HS256 JWT for the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Verify parses and validates a token. It rejects anything not signed with
// HS256, so an attacker cannot downgrade the algorithm.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if h.issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.issuer))
	}

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	default:
		// Signature failures, alg confusion, nbf violations and anything
		// else all collapse to an invalid token.
		return ErrInvalidSig
	}
}
