package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keedam-ai/quizgen/internal/auth"
	"github.com/keedam-ai/quizgen/internal/extract"
	"github.com/keedam-ai/quizgen/internal/quiz"
	"github.com/keedam-ai/quizgen/internal/storage"
)

// CreateSessionHandler is the upload boundary: accepts one PDF, runs the
// extraction gateway, and on success opens a new quiz session presenting the
// first question. Extraction blocks the request; a failed or empty extraction
// creates no session, leaving the caller free to retry.
func CreateSessionHandler(store quiz.Store, blobs storage.BlobStore, ex extract.Extractor, a *auth.AuthService, timeout time.Duration, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()
		if strings.ToLower(filepath.Ext(hdr.Filename)) != ".pdf" {
			http.Error(w, "only PDF files are supported", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		sess := quiz.NewSession(uuid.NewString())
		if err := sess.BeginUpload(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		key := sess.ID + "/" + filepath.Base(hdr.Filename)
		if _, err := blobs.Put(key, bytes.NewReader(data)); err != nil {
			http.Error(w, "store upload: "+err.Error(), http.StatusInternalServerError)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		res, err := ex.Extract(ctx, hdr.Filename, data)
		if err != nil {
			sess.Fail()
			log.Printf("extract %s: %v", hdr.Filename, err)
			var xerr *extract.Error
			if errors.As(err, &xerr) {
				http.Error(w, xerr.Cause, http.StatusBadGateway)
			} else {
				http.Error(w, "extraction failed", http.StatusBadGateway)
			}
			return
		}

		qz := quiz.Quiz{
			ID:        uuid.NewString(),
			Title:     strings.TrimSuffix(hdr.Filename, filepath.Ext(hdr.Filename)),
			SourceKey: key,
			Questions: res.Questions,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.PutQuiz(r.Context(), qz); err != nil {
			http.Error(w, "save quiz: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := sess.Load(qz); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if err := store.PutSession(r.Context(), sess); err != nil {
			http.Error(w, "save session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(sess.ID, auth.RoleSession)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"session_token": tok,
			"quiz_id":       qz.ID,
			"dropped":       res.Dropped,
			"view":          sess.Render(),
		})
	}
}
