package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Email     string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"size:20;not null"             json:"firstName"`
	LastName  string    `gorm:"size:20;not null"             json:"lastName"`
	Password  string    `gorm:"size:120;not null"            json:"-"`
	Admin     bool      `gorm:"not null;default:false"       json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Teacher struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"size:20;not null"         json:"firstName"`
	LastName  string    `gorm:"size:20;not null"         json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Session struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"size:50;not null"         json:"name"`
	Date           time.Time       `gorm:"not null"                 json:"date"`
	Description    string          `gorm:"size:2500;not null"       json:"description"`
	TeacherID      *uint           `gorm:"index"                    json:"teacher_id"`
	Participations []Participation `json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Participation is one roster entry. Roster order is ascending ID.
type Participation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	SessionID uint      `gorm:"not null;uniqueIndex:idx_session_user"      json:"session_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_session_user;index" json:"user_id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Roster returns participant user ids in join order.
func (s *Session) Roster() []uint {
	ids := make([]uint, 0, len(s.Participations))
	for _, p := range s.Participations {
		ids = append(ids, p.UserID)
	}
	return ids
}

func (s *Session) HasParticipant(userID uint) bool {
	for _, p := range s.Participations {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// All returns every model the schema migration has to create.
func All() []any {
	return []any{&User{}, &Teacher{}, &Session{}, &Participation{}}
}
