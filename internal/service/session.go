package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
	"github.com/Skotchmaster/yoga_studio/internal/transport"
	"github.com/Skotchmaster/yoga_studio/internal/util"
)

// SessionService is the session registry: CRUD over sessions plus search.
// Index and Search are optional.
type SessionService struct {
	Sessions SessionRepository
	Teachers TeacherRepository
	Events   EventPublisher
	Index    SessionIndexer
	Search   SessionSearcher
}

// FromRequest validates req and turns it into an entity. An unknown teacher
// is reported as a field error.
func (s *SessionService) FromRequest(ctx context.Context, req transport.SessionDTO) (*models.Session, error) {
	if err := ValidateSession(req); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		if _, err := s.Teachers.FindByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, &ValidationError{Fields: []FieldError{{Field: "teacher_id", Message: "unknown teacher"}}}
			}
			return nil, fmt.Errorf("find teacher: %w", err)
		}
	}
	return req.ToEntity(), nil
}

func (s *SessionService) Create(ctx context.Context, req transport.SessionDTO) (*models.Session, error) {
	session, err := s.FromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logging.FromContext(ctx).Info("session_created", "session_id", session.ID)
	s.index(ctx, session)
	publish(ctx, s.Events, session.ID, map[string]any{
		"type":      EventSessionCreated,
		"sessionID": session.ID,
		"name":      session.Name,
	})
	return session, nil
}

// Update replaces the mutable fields of session id. It does not check that
// the session exists; callers look it up first. The roster is kept.
func (s *SessionService) Update(ctx context.Context, id uint, req transport.SessionDTO) (*models.Session, error) {
	session, err := s.FromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	session.ID = id
	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
	}

	logging.FromContext(ctx).Info("session_updated", "session_id", id)
	s.index(ctx, updated)
	publish(ctx, s.Events, id, map[string]any{
		"type":      EventSessionUpdated,
		"sessionID": id,
		"name":      updated.Name,
	})
	return updated, nil
}

// GetByID returns nil, nil for an absent session.
func (s *SessionService) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	session, err := s.Sessions.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return session, err
}

func (s *SessionService) FindAll(ctx context.Context) ([]models.Session, error) {
	return s.Sessions.FindAll(ctx)
}

func (s *SessionService) Delete(ctx context.Context, id uint) error {
	if err := s.Sessions.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete session: %w", err)
	}

	l := logging.FromContext(ctx)
	l.Info("session_deleted", "session_id", id)
	if s.Index != nil {
		if err := s.Index.RemoveSession(ctx, id); err != nil {
			l.Error("session_unindex_failed", "session_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, id, map[string]any{
		"type":      EventSessionDeleted,
		"sessionID": id,
	})
	return nil
}

type SearchResult struct {
	Total    int64
	Offset   int
	Limit    int
	Sessions []models.Session
}

// Find returns one page of sessions matching q, in the searcher's order.
func (s *SessionService) Find(ctx context.Context, q string, page, size int) (*SearchResult, error) {
	if s.Search == nil {
		return nil, errors.New("session search is not configured")
	}
	offset, limit := util.Calculate(page, size)

	total, ids, err := s.Search.SearchIDs(ctx, strings.TrimSpace(q), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search sessions: %w", err)
	}
	sessions, err := s.Sessions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return &SearchResult{Total: total, Offset: offset, Limit: limit, Sessions: sessions}, nil
}

func (s *SessionService) index(ctx context.Context, session *models.Session) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexSession(ctx, session); err != nil {
		logging.FromContext(ctx).Error("session_index_failed", "session_id", session.ID, "error", err)
	}
}

// Reindex pushes every stored session to the search index.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	sessions, err := s.Sessions.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load sessions: %w", err)
	}
	for i := range sessions {
		if err := s.Index.IndexSession(ctx, &sessions[i]); err != nil {
			return i, fmt.Errorf("index session %d: %w", sessions[i].ID, err)
		}
	}
	return len(sessions), nil
}
