package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/keedam-ai/quizgen/internal/auth"
	"github.com/keedam-ai/quizgen/internal/quiz"
)

// loadSession resolves the bearer token's session. Writes the error response
// itself and returns nil when the caller should bail.
func loadSession(w http.ResponseWriter, r *http.Request, store quiz.Store) *quiz.Session {
	c, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return nil
	}
	s, err := store.GetSession(r.Context(), c.Sub)
	if err != nil {
		if errors.Is(err, quiz.ErrSessionNotFound) {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return nil
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}
	return s
}

// apply runs one state-machine operation, persists the snapshot, and renders.
// Rejected transitions map to 409 and change nothing.
func apply(w http.ResponseWriter, r *http.Request, store quiz.Store, s *quiz.Session, op func() error) {
	if err := op(); err != nil {
		if errors.Is(err, quiz.ErrInvalidAction) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := store.PutSession(r.Context(), s); err != nil {
		http.Error(w, "save session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeView(w, s)
}

func writeView(w http.ResponseWriter, s *quiz.Session) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Render())
}

func GetSessionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := loadSession(w, r, store)
		if s == nil {
			return
		}
		writeView(w, s)
	}
}

func SubmitAnswerHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := loadSession(w, r, store)
		if s == nil {
			return
		}
		var req struct {
			Index  int    `json:"index"`
			Option string `json:"option"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		apply(w, r, store, s, func() error { return s.SubmitAnswer(req.Index, req.Option) })
	}
}

func AdvanceHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := loadSession(w, r, store)
		if s == nil {
			return
		}
		apply(w, r, store, s, s.Advance)
	}
}

func JumpHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := loadSession(w, r, store)
		if s == nil {
			return
		}
		var req struct {
			Index int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		apply(w, r, store, s, func() error { return s.JumpTo(req.Index) })
	}
}

// ResetHandler ends the session: state cleared, session row gone. The stored
// quiz stays for the admin surface.
func ResetHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := loadSession(w, r, store)
		if s == nil {
			return
		}
		s.Reset()
		if err := store.DeleteSession(r.Context(), s.ID); err != nil {
			http.Error(w, "delete session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeView(w, s)
	}
}
