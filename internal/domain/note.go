package domain

import (
	"context"
	"time"
)

// DefaultTag is assigned to notes created without an explicit tag.
const DefaultTag = "General"

// Note is a single note record owned by exactly one user.
type Note struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Tag         string
	CreatedAt   time.Time
}

// NotePatch describes a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title       *string
	Description *string
	Tag         *string
}

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
	ListByUser(ctx context.Context, userID string) ([]Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id string) error
}
