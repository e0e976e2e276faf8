package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/repo"
)

type TeacherService struct {
	Teachers TeacherRepository
}

func (s *TeacherService) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	t, err := s.Teachers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

func (s *TeacherService) FindAll(ctx context.Context) ([]models.Teacher, error) {
	return s.Teachers.FindAll(ctx)
}
