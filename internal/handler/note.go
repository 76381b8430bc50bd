package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"cloudnotes/internal/domain"
	"cloudnotes/internal/service"
)

// NoteHandler handles note-related HTTP requests.
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleFetchAll returns all notes owned by the caller.
// GET /api/notes/fetchallnotes
func (h *NoteHandler) HandleFetchAll(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	notes, err := h.notes.List(r.Context(), userID)
	if err != nil {
		slog.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteDTOs(notes))
}

// HandleAdd creates a new note for the caller.
// POST /api/notes/addnote
// Request: {"title":"...","description":"...","tag":"..."} (tag optional)
func (h *NoteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Tag         string `json:"tag"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.notes.Create(r.Context(), userID, req.Title, req.Description, req.Tag)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeValidationErrors(w, verr)
			return
		}
		slog.Error("add note", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// HandleUpdate applies a partial update to a note. Only fields present in
// the body are validated and changed.
// PUT /api/notes/updatenote/{id}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	noteID := r.PathValue("id")

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Tag         *string `json:"tag"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := domain.NotePatch{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}
	note, err := h.notes.Update(r.Context(), userID, noteID, patch)
	if err != nil {
		h.writeNoteError(w, "update note", err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// HandleDelete permanently removes a note.
// DELETE /api/notes/deletenote/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	noteID := r.PathValue("id")

	if err := h.notes.Delete(r.Context(), userID, noteID); err != nil {
		h.writeNoteError(w, "delete note", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note has been deleted"})
}

// writeNoteError maps note mutation failures to transport status codes.
// Ownership violations use 401: this API does not distinguish "not logged
// in" from "not allowed".
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationErrors(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
