package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/yoga_studio/internal/hash"
	"github.com/Skotchmaster/yoga_studio/internal/models"
)

const (
	DemoAdminEmail    = "yoga@studio.com"
	DemoAdminPassword = "test!1234"
)

var demoTeachers = []models.Teacher{
	{FirstName: "Margot", LastName: "DELAHAYE"},
	{FirstName: "Hélène", LastName: "THIERCELIN"},
}

// Seed inserts the demo admin account and teachers. Running it twice is safe.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.User
		err := tx.Where("email = ?", DemoAdminEmail).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, err := hash.HashPassword(DemoAdminPassword)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin = models.User{
				Email:     DemoAdminEmail,
				FirstName: "Admin",
				LastName:  "Admin",
				Password:  hashed,
				Admin:     true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
		case err != nil:
			return err
		}

		var teachers int64
		if err := tx.Model(&models.Teacher{}).Count(&teachers).Error; err != nil {
			return err
		}
		if teachers > 0 {
			return nil
		}
		seed := make([]models.Teacher, len(demoTeachers))
		copy(seed, demoTeachers)
		if err := tx.Create(&seed).Error; err != nil {
			return fmt.Errorf("seed teachers: %w", err)
		}
		return nil
	})
}
