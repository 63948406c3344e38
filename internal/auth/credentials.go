package auth

import (
	"errors"
	"fmt"
	"time"

	"orientation-service/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 30 * time.Minute

var (
	ErrInvalidToken    = apperr.Auth("Could not validate credentials")
	ErrPasswordTooLong = apperr.Validation("Password must be at most 72 bytes")
)

// Credentials hashes passwords and signs bearer tokens with a secret given at
// construction.
type Credentials struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCredentials(secret string, ttl time.Duration) *Credentials {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Credentials{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs an HS256 token for subject that expires after the
// configured TTL.
func (c *Credentials) IssueToken(subject string) (string, time.Time, error) {
	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// ValidateToken returns the subject of a token signed by this service. Every
// failure is reported as ErrInvalidToken.
func (c *Credentials) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, errors.New("token has no subject"))
	}
	return claims.Subject, nil
}
