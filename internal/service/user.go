package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
)

type UserService struct {
	Users  UserRepository
	Events EventPublisher
}

// FindByID returns nil, nil when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// Delete removes the account with the given id. Only the owner may do so:
// the requester's email has to match the target's.
func (s *UserService) Delete(ctx context.Context, requester Identity, id uint) error {
	l := logging.FromContext(ctx).With("op", "delete_user", "user_id", id)

	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if u.Email != requester.Email {
		l.Warn("delete_user_denied", "requester_id", requester.UserID)
		return ErrUnauthorized
	}

	if err := s.Users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	l.Info("user_deleted")
	publish(ctx, s.Events, id, map[string]any{
		"type":   EventUserDeleted,
		"userID": id,
	})
	return nil
}
