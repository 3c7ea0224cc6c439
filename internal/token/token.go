package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken     = errors.New("access token required")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

// Kind discriminates the two authenticated principal types. Decoding a
// token yields exactly one of them; authorization checks match on Kind
// rather than on a boolean claim.
type Kind string

const (
	KindMerchant Kind = "merchant"
	KindAdmin    Kind = "admin"
)

// Principal is the decoded identity carried by a verified token.
type Principal struct {
	Kind  Kind
	ID    uint
	Email string
	// Name holds the merchant's business name or the admin's display name.
	Name string
}

// Issuer signs and verifies HS256 tokens with a fixed expiry.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), expiry: expiry}
}

// Issue produces a signed token for the given principal.
func (i *Issuer) Issue(p Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", p.ID),
		"role":  string(p.Kind),
		"email": p.Email,
		"name":  p.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(i.expiry).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry and decodes the claims into a
// Principal. It never trusts a claim it cannot parse.
func (i *Issuer) Verify(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrMissingToken
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	return FromClaims(claims)
}

// FromClaims decodes already-verified JWT claims into a Principal.
func FromClaims(claims jwt.MapClaims) (Principal, error) {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	var id uint
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
		return Principal{}, ErrInvalidToken
	}

	kind := Kind(role)
	switch kind {
	case KindMerchant, KindAdmin:
	default:
		return Principal{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return Principal{Kind: kind, ID: id, Email: email, Name: name}, nil
}
