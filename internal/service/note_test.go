package service_test

import (
	"context"
	"errors"
	"testing"

	"cloudnotes/internal/domain"
	"cloudnotes/internal/service"
)

// newTestNoteService returns a note service plus the ids of two registered
// users to exercise ownership checks.
func newTestNoteService(t *testing.T) (*service.NoteService, string, string) {
	t.Helper()
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)

	ownerID := registerUser(t, auth, "Owner", "owner@example.com")
	otherID := registerUser(t, auth, "Other", "other@example.com")

	return service.NewNoteService(db.Notes()), ownerID, otherID
}

func registerUser(t *testing.T, auth *service.AuthService, name, email string) string {
	t.Helper()
	token, err := auth.Register(context.Background(), name, email, "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	id, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken %s: %v", email, err)
	}
	return id
}

func strPtr(s string) *string { return &s }

func TestNoteService_Create_Defaults(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)
	ctx := context.Background()

	note, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID == "" {
		t.Fatal("expected note ID to be set")
	}
	if note.UserID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, note.UserID)
	}
	if note.Tag != domain.DefaultTag {
		t.Fatalf("expected default tag %q, got %q", domain.DefaultTag, note.Tag)
	}
	if note.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestNoteService_Create_AggregatesViolations(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)

	_, err := notes.Create(context.Background(), ownerID, "ab", "tiny", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}
}

func TestNoteService_List_RoundTrip(t *testing.T) {
	notes, ownerID, otherID := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "Errands")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := notes.Create(ctx, otherID, "Not yours", "Someone else's note", ""); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 note, got %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.Title != "Groceries" || got.Description != "Milk and eggs" || got.Tag != "Errands" {
		t.Fatalf("listed note does not match created note: %+v", got)
	}
}

func TestNoteService_List_InsertionOrder(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)
	ctx := context.Background()

	titles := []string{"first note", "second note", "third note"}
	for _, title := range titles {
		if _, err := notes.Create(ctx, ownerID, title, "some details", ""); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != len(titles) {
		t.Fatalf("expected %d notes, got %d", len(titles), len(list))
	}
	for i, title := range titles {
		if list[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, list[i].Title)
		}
	}
}

func TestNoteService_List_Empty(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)

	list, err := notes.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no notes, got %d", len(list))
	}
}

func TestNoteService_Update_Partial(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := notes.Update(ctx, ownerID, created.ID, domain.NotePatch{Tag: strPtr("Work")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Tag != "Work" {
		t.Fatalf("expected tag Work, got %q", updated.Tag)
	}
	if updated.Title != "Groceries" || updated.Description != "Milk and eggs" {
		t.Fatalf("partial update must not touch other fields: %+v", updated)
	}

	// The change must be persisted, not just reflected in the return value.
	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].Tag != "Work" || list[0].Title != "Groceries" {
		t.Fatalf("persisted note does not match update: %+v", list[0])
	}
}

func TestNoteService_Update_ValidatesSuppliedFieldsOnly(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A too-short supplied title is rejected.
	_, err = notes.Update(ctx, ownerID, created.ID, domain.NotePatch{Title: strPtr("ab")})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// An absent title is not validated at all.
	if _, err := notes.Update(ctx, ownerID, created.ID, domain.NotePatch{Tag: strPtr("Ideas")}); err != nil {
		t.Fatalf("Update tag only: %v", err)
	}
}

func TestNoteService_Update_WrongOwner(t *testing.T) {
	notes, ownerID, otherID := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = notes.Update(ctx, otherID, created.ID, domain.NotePatch{Tag: strPtr("Stolen")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The note must be unchanged.
	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].Tag != domain.DefaultTag {
		t.Fatalf("forbidden update must not modify the note: %+v", list[0])
	}
}

func TestNoteService_Delete(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := notes.Delete(ctx, ownerID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no notes after delete, got %d", len(list))
	}

	if err := notes.Delete(ctx, ownerID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestNoteService_Delete_WrongOwner(t *testing.T) {
	notes, ownerID, otherID := newTestNoteService(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, ownerID, "Groceries", "Milk and eggs", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := notes.Delete(ctx, otherID, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	list, err := notes.List(ctx, ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatal("forbidden delete must not remove the note")
	}
}

func TestNoteService_Update_NotFound(t *testing.T) {
	notes, ownerID, _ := newTestNoteService(t)

	_, err := notes.Update(context.Background(), ownerID, "no-such-note", domain.NotePatch{Tag: strPtr("X")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
