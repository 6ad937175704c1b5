package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned by Verify for any credential that cannot be
// trusted: bad signature, malformed payload, or past expiration. Callers
// treat it as "anonymous", not as a fault.
var ErrInvalid = errors.New("invalid credential")

// Identity is the public identity carried inside a credential.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Codec signs and verifies credentials. The secret and lifetime are
// process-wide configuration, set once at startup; rotating the secret
// invalidates all outstanding credentials.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// New creates a Codec with the given signing secret and credential lifetime.
func New(secret string, lifetime time.Duration) *Codec {
	return &Codec{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue produces a signed credential embedding the identity and an
// expiration fixed at issuance plus the configured lifetime.
func (c *Codec) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       id.ID,
		"username": id.Username,
		"email":    id.Email,
		"exp":      now.Add(c.lifetime).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiration of a credential and returns
// the embedded identity. Any failure is reported as ErrInvalid.
func (c *Codec) Verify(credential string) (*Identity, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	id, err := identityFromClaims(claims)
	if err != nil {
		return nil, ErrInvalid
	}
	return id, nil
}

// Decode extracts the identity and expiration instant from a credential
// WITHOUT verifying its signature. This is the contract the client session
// helper relies on to read expiry and identity without holding the secret.
// It must never be treated as authentication.
func Decode(credential string) (*Identity, time.Time, error) {
	var claims jwt.MapClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, &claims); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode credential: %w", err)
	}

	id, err := identityFromClaims(claims)
	if err != nil {
		return nil, time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, time.Time{}, fmt.Errorf("exp not found in credential")
	}

	return id, time.Unix(int64(exp), 0), nil
}

func identityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("id not found in credential")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("username not found in credential")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("email not found in credential")
	}
	return &Identity{ID: id, Username: username, Email: email}, nil
}
