package transport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type JwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Date reads RFC 3339 timestamps as well as plain dates like "2025-01-01".
type Date struct {
	time.Time
}

const dateOnly = "2006-01-02"

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, unquoted); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(dateOnly, unquoted)
	if err != nil {
		return fmt.Errorf("date %q is neither RFC 3339 nor %s", unquoted, dateOnly)
	}
	d.Time = t
	return nil
}

type SessionDTO struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Date        *Date      `json:"date"`
	TeacherID   *uint      `json:"teacher_id"`
	Description string     `json:"description"`
	Users       []uint     `json:"users"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TeacherDTO struct {
	ID        uint      `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type SessionPage struct {
	Data []SessionDTO `json:"data"`
	Meta PageMeta     `json:"meta"`
}

func SessionToDTO(s *models.Session) SessionDTO {
	created, updated := s.CreatedAt, s.UpdatedAt
	return SessionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Date:        &Date{Time: s.Date},
		TeacherID:   s.TeacherID,
		Description: s.Description,
		Users:       s.Roster(),
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
}

func SessionsToDTO(sessions []models.Session) []SessionDTO {
	out := make([]SessionDTO, 0, len(sessions))
	for i := range sessions {
		out = append(out, SessionToDTO(&sessions[i]))
	}
	return out
}

// ToEntity copies the mutable fields. The roster is not taken from the
// request; it only changes through participation.
func (d SessionDTO) ToEntity() *models.Session {
	s := &models.Session{
		Name:        d.Name,
		Description: d.Description,
		TeacherID:   d.TeacherID,
	}
	if d.Date != nil {
		s.Date = d.Date.UTC()
	}
	return s
}

func UserToDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func TeacherToDTO(t *models.Teacher) TeacherDTO {
	return TeacherDTO{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TeachersToDTO(teachers []models.Teacher) []TeacherDTO {
	out := make([]TeacherDTO, 0, len(teachers))
	for i := range teachers {
		out = append(out, TeacherToDTO(&teachers[i]))
	}
	return out
}

func NewPageMeta(page, offset, limit int, total int64) PageMeta {
	return PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}
