// Package tokens issues and checks the bearer tokens handed out at login.
//
// Tokens are HS512-signed JWTs carrying the user's email as subject, a role
// claim, issued-at, expiry and a random token id. Nothing is persisted: a
// token is accepted purely on signature and expiry.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewService(secret []byte, lifetime time.Duration) *Service {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Service{secret: key, lifetime: lifetime, now: time.Now}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Service) Now() time.Time { return s.now() }

func (s *Service) Issue(identity, role string, issuedAt time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate reports whether token is well formed, signed with this service's
// key and not yet expired. It never fails loudly.
func (s *Service) Validate(token string) bool {
	if token == "" {
		return false
	}
	_, err := s.parse(token)
	return err == nil
}

// SubjectOf returns the identity the token was issued for. Expiry is reported
// as ErrTokenExpired, any other problem as ErrTokenMalformed.
func (s *Service) SubjectOf(token string) (string, error) {
	claims, err := s.ClaimsOf(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) ClaimsOf(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrTokenMalformed)
	}
	return s.parse(token)
}

func (s *Service) parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return &claims, nil
}
