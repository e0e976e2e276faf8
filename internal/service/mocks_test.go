package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) Save(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) DeleteByID(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockTeachers struct{ mock.Mock }

func (m *mockTeachers) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.Teacher)
	return t, args.Error(1)
}

func (m *mockTeachers) FindAll(ctx context.Context) ([]models.Teacher, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]models.Teacher)
	return t, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *mockSessions) FindAll(ctx context.Context) ([]models.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.Session)
	return s, args.Error(1)
}

func (m *mockSessions) FindByIDs(ctx context.Context, ids []uint) ([]models.Session, error) {
	args := m.Called(ctx, ids)
	s, _ := args.Get(0).([]models.Session)
	return s, args.Error(1)
}

func (m *mockSessions) Create(ctx context.Context, s *models.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessions) Update(ctx context.Context, s *models.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessions) DeleteByID(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessions) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	return m.Called(ctx, sessionID, userID).Error(0)
}

func (m *mockSessions) RemoveParticipant(ctx context.Context, sessionID, userID uint) error {
	return m.Called(ctx, sessionID, userID).Error(0)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) PublishEvent(ctx context.Context, key string, event any) error {
	return m.Called(ctx, key, event).Error(0)
}

type mockSearcher struct{ mock.Mock }

func (m *mockSearcher) SearchIDs(ctx context.Context, q string, offset, limit int) (int64, []uint, error) {
	args := m.Called(ctx, q, offset, limit)
	ids, _ := args.Get(1).([]uint)
	return args.Get(0).(int64), ids, args.Error(2)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) IndexSession(ctx context.Context, s *models.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockIndexer) RemoveSession(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
