package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// SQLStore persists quizzes and sessions in sqlite or postgres. Question
// batches travel as a JSON column; answers likewise, keyed by question index.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuiz(ctx context.Context, qz Quiz) error {
	qj, err := json.Marshal(qz.Questions)
	if err != nil {
		return err
	}
	created := qz.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,source_key,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, source_key=EXCLUDED.source_key, questions_json=EXCLUDED.questions_json`,
		qz.ID, qz.Title, qz.SourceKey, string(qj), created)
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,source_key,questions_json,created_at FROM quizzes WHERE id=$1`, id)
	var qz Quiz
	var qjson string
	if err := row.Scan(&qz.ID, &qz.Title, &qz.SourceKey, &qjson, &qz.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &qz.Questions); err != nil {
		return Quiz{}, err
	}
	return qz, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]QuizSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,questions_json,created_at FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []QuizSummary{}
	for rows.Next() {
		var sum QuizSummary
		var qjson string
		if err := rows.Scan(&sum.ID, &sum.Title, &qjson, &sum.CreatedAt); err != nil {
			return nil, err
		}
		var qs []Question
		if err := json.Unmarshal([]byte(qjson), &qs); err == nil {
			sum.Questions = len(qs)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (s *SQLStore) PutSession(ctx context.Context, sess *Session) error {
	aj, err := json.Marshal(encodeAnswers(sess.Answers))
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (id,quiz_id,phase,current_index,answers_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		ON CONFLICT (id) DO UPDATE SET quiz_id=EXCLUDED.quiz_id, phase=EXCLUDED.phase,
			current_index=EXCLUDED.current_index, answers_json=EXCLUDED.answers_json, updated_at=EXCLUDED.updated_at`,
		sess.ID, sess.QuizID, string(sess.Phase), sess.Current, string(aj), now)
	return err
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,phase,current_index,answers_json FROM sessions WHERE id=$1`, id)
	var sess Session
	var phase, ajson string
	if err := row.Scan(&sess.ID, &sess.QuizID, &phase, &sess.Current, &ajson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	sess.Phase = Phase(phase)
	var enc map[string]string
	if err := json.Unmarshal([]byte(ajson), &enc); err != nil {
		enc = map[string]string{}
	}
	sess.Answers = decodeAnswers(enc)
	if sess.QuizID != "" {
		qz, err := s.GetQuiz(ctx, sess.QuizID)
		if err != nil {
			return nil, err
		}
		sess.Questions = qz.Questions
	}
	return &sess, nil
}

func (s *SQLStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	return err
}

// JSON objects key by string; the ledger keys by int.

func encodeAnswers(a map[int]string) map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		out[strconv.Itoa(k)] = v
	}
	return out
}

func decodeAnswers(a map[string]string) map[int]string {
	out := make(map[int]string, len(a))
	for k, v := range a {
		if i, err := strconv.Atoi(k); err == nil {
			out[i] = v
		}
	}
	return out
}
