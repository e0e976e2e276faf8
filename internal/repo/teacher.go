package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

type Teachers struct {
	DB *gorm.DB
}

func (r *Teachers) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.DB.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (r *Teachers) FindAll(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *Teachers) Save(ctx context.Context, t *models.Teacher) error {
	return translate(r.DB.WithContext(ctx).Save(t).Error)
}
