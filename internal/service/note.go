package service

import (
	"context"
	"errors"
	"fmt"

	"cloudnotes/internal/domain"
)

// NoteService handles note CRUD scoped to the owning user.
type NoteService struct {
	notes domain.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// List returns all notes owned by the user in insertion order.
func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.notes.ListByUser(ctx, userID)
}

// Create validates and persists a new note for the user. An empty tag
// defaults to domain.DefaultTag.
func (s *NoteService) Create(ctx context.Context, userID, title, description, tag string) (*domain.Note, error) {
	var verr domain.ValidationError
	if len(title) < 3 {
		verr.Add("title", "Enter a valid title")
	}
	if len(description) < 5 {
		verr.Add("description", "Description must be at least 5 characters long")
	}
	if verr.Any() {
		return nil, &verr
	}

	if tag == "" {
		tag = domain.DefaultTag
	}

	note := &domain.Note{
		UserID:      userID,
		Title:       title,
		Description: description,
		Tag:         tag,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update applies a partial update to a note after an ownership check. Only
// fields present in the patch are validated and changed.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, patch domain.NotePatch) (*domain.Note, error) {
	var verr domain.ValidationError
	if patch.Title != nil && len(*patch.Title) < 3 {
		verr.Add("title", "Enter a valid title")
	}
	if patch.Description != nil && len(*patch.Description) < 5 {
		verr.Add("description", "Description must be at least 5 characters long")
	}
	if verr.Any() {
		return nil, &verr
	}

	note, err := s.authorize(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Description != nil {
		note.Description = *patch.Description
	}
	if patch.Tag != nil && *patch.Tag != "" {
		note.Tag = *patch.Tag
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

// Delete removes a note after an ownership check. The delete is permanent.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.authorize(ctx, userID, noteID); err != nil {
		return err
	}
	return s.notes.Delete(ctx, noteID)
}

// authorize loads a note and verifies the caller owns it. A note owned by a
// different user fails with ErrForbidden, never a silent no-op.
func (s *NoteService) authorize(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return note, nil
}
