package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
)

// Ledger governs session rosters. A user is either participating in a
// session or not; Join and Leave move between the two and refuse the
// transition that would leave the state unchanged.
type Ledger struct {
	Sessions SessionRepository
	Users    UserRepository
	Events   EventPublisher
}

// Join adds userID to the roster of sessionID. Non-admin callers may only
// enrol themselves.
func (l *Ledger) Join(ctx context.Context, requester Identity, sessionID, userID uint) error {
	log := logging.FromContext(ctx).With("op", "participate", "session_id", sessionID, "user_id", userID)
	if err := authorizeFor(requester, userID); err != nil {
		log.Warn("participate_denied", "requester_id", requester.UserID)
		return err
	}

	session, err := l.session(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, err := l.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("find user: %w", err)
	}
	if session.HasParticipant(userID) {
		log.Warn("participate_failed", "status", 400, "reason", "already_participating")
		return ErrAlreadyParticipating
	}

	if err := l.Sessions.AddParticipant(ctx, sessionID, userID); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			log.Warn("participate_failed", "status", 400, "reason", "already_participating")
			return ErrAlreadyParticipating
		}
		return fmt.Errorf("add participant: %w", err)
	}

	log.Info("participate_ok")
	publish(ctx, l.Events, sessionID, map[string]any{
		"type":      EventSessionJoined,
		"sessionID": sessionID,
		"userID":    userID,
	})
	return nil
}

// Leave removes userID from the roster of sessionID. The order of the
// remaining participants is unchanged.
func (l *Ledger) Leave(ctx context.Context, requester Identity, sessionID, userID uint) error {
	log := logging.FromContext(ctx).With("op", "unparticipate", "session_id", sessionID, "user_id", userID)
	if err := authorizeFor(requester, userID); err != nil {
		log.Warn("unparticipate_denied", "requester_id", requester.UserID)
		return err
	}

	session, err := l.session(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.HasParticipant(userID) {
		log.Warn("unparticipate_failed", "status", 400, "reason", "not_participating")
		return ErrNotParticipating
	}

	if err := l.Sessions.RemoveParticipant(ctx, sessionID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn("unparticipate_failed", "status", 400, "reason", "not_participating")
			return ErrNotParticipating
		}
		return fmt.Errorf("remove participant: %w", err)
	}

	log.Info("unparticipate_ok")
	publish(ctx, l.Events, sessionID, map[string]any{
		"type":      EventSessionLeft,
		"sessionID": sessionID,
		"userID":    userID,
	})
	return nil
}

func (l *Ledger) session(ctx context.Context, id uint) (*models.Session, error) {
	session, err := l.Sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func authorizeFor(requester Identity, userID uint) error {
	if requester.Admin || requester.UserID == userID {
		return nil
	}
	return ErrUnauthorized
}
