package handler

import (
	"net/http"

	"cloudnotes/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Every route except
// registration, login, and the health check sits behind RequireAuth.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, notes *service.NoteService) {
	authHandler := NewAuthHandler(auth)
	noteHandler := NewNoteHandler(notes)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/createuser", authHandler.HandleCreateUser)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("POST /api/auth/getuser", RequireAuth(auth, http.HandlerFunc(authHandler.HandleGetUser)))

	mux.Handle("GET /api/notes/fetchallnotes", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleFetchAll)))
	mux.Handle("POST /api/notes/addnote", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleAdd)))
	mux.Handle("PUT /api/notes/updatenote/{id}", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleUpdate)))
	mux.Handle("DELETE /api/notes/deletenote/{id}", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleDelete)))
}
