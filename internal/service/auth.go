package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/yoga_studio/internal/hash"
	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
	"github.com/Skotchmaster/yoga_studio/internal/tokens"
	"github.com/Skotchmaster/yoga_studio/internal/transport"
)

const TokenType = "Bearer"

type AuthService struct {
	Users  UserRepository
	Tokens *tokens.Service
	Events EventPublisher
}

// Register creates a standard user. A taken email is ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	if err := ValidateSignup(req); err != nil {
		return nil, err
	}
	l := logging.FromContext(ctx).With("op", "register")

	exists, err := s.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		l.Warn("register_failed", "reason", "email_taken")
		return nil, ErrEmailTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
	}
	if err := s.Users.Save(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_failed", "reason", "email_taken")
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	publish(ctx, s.Events, user.ID, map[string]any{
		"type":   EventUserRegistered,
		"userID": user.ID,
		"email":  user.Email,
	})
	return user, nil
}

// Login checks the credentials and issues a token for the user's email.
// Unknown email and wrong password both yield ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.JwtResponse, error) {
	if err := ValidateLogin(req); err != nil {
		return nil, err
	}
	l := logging.FromContext(ctx).With("op", "login")

	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown_email")
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !hash.CheckPassword(user.Password, req.Password) {
		l.Warn("login_failed", "reason", "bad_password", "user_id", user.ID)
		return nil, ErrAuthenticationFailed
	}

	role := tokens.RoleUser
	if user.Admin {
		role = tokens.RoleAdmin
	}
	token, err := s.Tokens.Issue(user.Email, role, s.Tokens.Now())
	if err != nil {
		return nil, err
	}

	l.Info("login_ok", "user_id", user.ID)
	return &transport.JwtResponse{
		Token:     token,
		Type:      TokenType,
		ID:        user.ID,
		Username:  user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}
