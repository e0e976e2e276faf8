package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

type Sessions struct {
	DB *gorm.DB
}

func withRoster(db *gorm.DB) *gorm.DB {
	return db.Preload("Participations", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *Sessions) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := withRoster(r.DB.WithContext(ctx)).First(&session, id).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *Sessions) FindAll(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := withRoster(r.DB.WithContext(ctx)).Order("id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindByIDs loads the given sessions in the order of ids, skipping missing ones.
func (r *Sessions) FindByIDs(ctx context.Context, ids []uint) ([]models.Session, error) {
	if len(ids) == 0 {
		return []models.Session{}, nil
	}
	var found []models.Session
	if err := withRoster(r.DB.WithContext(ctx)).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Session, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	out := make([]models.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Sessions) Create(ctx context.Context, s *models.Session) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

// Update writes the mutable columns of s. The roster is left alone and a
// missing row is not reported.
func (r *Sessions) Update(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = time.Now().UTC()
	return translate(r.DB.WithContext(ctx).
		Model(&models.Session{ID: s.ID}).
		Select("name", "date", "description", "teacher_id", "updated_at").
		Updates(s).Error)
}

func (r *Sessions) DeleteByID(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Session{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddParticipant appends userID to the roster. A second entry for the same
// user is rejected with ErrDuplicate, by the check inside the transaction or
// by the unique index when two joins race.
func (r *Sessions) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Participation{}).
			Where("session_id = ? AND user_id = ?", sessionID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		p := models.Participation{SessionID: sessionID, UserID: userID}
		if err := tx.Create(&p).Error; err != nil {
			return translate(err)
		}
		return tx.Model(&models.Session{}).Where("id = ?", sessionID).
			UpdateColumn("updated_at", time.Now().UTC()).Error
	})
}

// RemoveParticipant drops userID from the roster, ErrNotFound if absent.
func (r *Sessions) RemoveParticipant(ctx context.Context, sessionID, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).Delete(&models.Participation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Session{}).Where("id = ?", sessionID).
			UpdateColumn("updated_at", time.Now().UTC()).Error
	})
}

// SearchIDs is the database fallback for session search: a case-insensitive
// substring match on name and description.
func (r *Sessions) SearchIDs(ctx context.Context, q string, offset, limit int) (int64, []uint, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	where := "LOWER(name) LIKE ? OR LOWER(description) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Session{}).
		Where(where, pattern, pattern).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var ids []uint
	if err := r.DB.WithContext(ctx).Model(&models.Session{}).
		Where(where, pattern, pattern).
		Order("date ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, nil, err
	}
	return total, ids, nil
}
