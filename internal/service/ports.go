package service

import (
	"context"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

// Identity is the authenticated caller, resolved once per request from the
// bearer token and passed explicitly to the operations that need it.
type Identity struct {
	UserID uint
	Email  string
	Admin  bool
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, u *models.User) error
	DeleteByID(ctx context.Context, id uint) error
}

type TeacherRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Teacher, error)
	FindAll(ctx context.Context) ([]models.Teacher, error)
}

type SessionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Session, error)
	FindAll(ctx context.Context) ([]models.Session, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Session, error)
	Create(ctx context.Context, s *models.Session) error
	Update(ctx context.Context, s *models.Session) error
	DeleteByID(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, sessionID, userID uint) error
	RemoveParticipant(ctx context.Context, sessionID, userID uint) error
}

type SessionSearcher interface {
	SearchIDs(ctx context.Context, q string, offset, limit int) (int64, []uint, error)
}

type SessionIndexer interface {
	IndexSession(ctx context.Context, s *models.Session) error
	RemoveSession(ctx context.Context, id uint) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}
