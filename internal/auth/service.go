package auth

import (
	"context"
	"errors"

	"orientation-service/internal/apperr"
	"orientation-service/internal/metrics"
	"orientation-service/internal/user"
)

var (
	ErrInvalidCredentials = apperr.Auth("Incorrect username or password")
	ErrNotOwner           = apperr.Auth("Not allowed to reset another user's password")
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*user.Profile, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	ResetPassword(ctx context.Context, caller *user.User, username, newPassword string) error
}

type service struct {
	users       user.Repository
	credentials *Credentials
	metrics     *metrics.Metrics
}

func NewService(users user.Repository, credentials *Credentials, m *metrics.Metrics) Service {
	return &service{
		users:       users,
		credentials: credentials,
		metrics:     m,
	}
}

// Signup hashes the password and stores a new user. A taken username is
// reported by the users table's unique index.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*user.Profile, error) {
	hash, err := s.credentials.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:             req.Username,
		Password:             hash,
		BaccalaureateScore:   req.BaccalaureateScore,
		BaccalaureateSection: req.BaccalaureateSection,
		CareerPathID:         req.CareerPathID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.metrics.Catalog.RecordSignup(ctx)
	return u.Profile(), nil
}

// Login answers unknown users and wrong passwords with the same error.
func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.metrics.Catalog.RecordLogin(ctx, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.credentials.Verify(req.Password, u.Password) {
		s.metrics.Catalog.RecordLogin(ctx, false)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.credentials.IssueToken(u.Username)
	if err != nil {
		return nil, err
	}

	s.metrics.Catalog.RecordLogin(ctx, true)
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// ResetPassword overwrites the password of username. Only the owner may
// reset it.
func (s *service) ResetPassword(ctx context.Context, caller *user.User, username, newPassword string) error {
	if caller == nil || caller.Username != username {
		return ErrNotOwner
	}

	hash, err := s.credentials.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, username, hash)
}
