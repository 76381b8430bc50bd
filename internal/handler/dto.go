package handler

import (
	"time"

	"cloudnotes/internal/domain"
)

// UserDTO is the JSON representation of a user. It deliberately has no
// password field of any kind.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NoteDTO is the JSON representation of a note.
type NoteDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	CreatedAt   string `json:"createdAt"`
}

func toNoteDTO(n *domain.Note) NoteDTO {
	return NoteDTO{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		Tag:         n.Tag,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}

func toNoteDTOs(notes []domain.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i := range notes {
		dtos[i] = toNoteDTO(&notes[i])
	}
	return dtos
}
