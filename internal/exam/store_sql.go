package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists exams and submissions as JSON documents. Works against
// both the sqlite and postgres schemas from internal/db.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutExam(ctx context.Context, e *NormalizedExam) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams (id,title,exam_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, exam_json=EXCLUDED.exam_json`,
		e.ID, e.Title, string(doc), time.Now().Unix())
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (*NormalizedExam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT exam_json FROM exams WHERE id=$1`, id)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	var e NormalizedExam
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLStore) ListExams(ctx context.Context) ([]*NormalizedExam, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT exam_json FROM exams ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*NormalizedExam
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var e NormalizedExam
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutSubmission(ctx context.Context, sub *Submission) error {
	doc, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	scored := 0
	if sub.ScoringResult != nil && sub.Scored {
		scored = 1
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id,exam_id,student_id,submission_json,scored,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET submission_json=EXCLUDED.submission_json, scored=EXCLUDED.scored`,
		sub.ID, sub.ExamID, sub.StudentID, string(doc), scored, time.Now().Unix())
	return err
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT submission_json FROM submissions WHERE id=$1`, id)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return decodeSubmission(doc)
}

func (s *SQLStore) ListSubmissions(ctx context.Context, studentID string) ([]*Submission, error) {
	q := `SELECT submission_json FROM submissions ORDER BY submitted_at`
	args := []any{}
	if studentID != "" {
		q = `SELECT submission_json FROM submissions WHERE student_id=$1 ORDER BY submitted_at`
		args = append(args, studentID)
	}
	return s.querySubmissions(ctx, q, args...)
}

func (s *SQLStore) ListUnscoredSubmissions(ctx context.Context) ([]*Submission, error) {
	return s.querySubmissions(ctx,
		`SELECT submission_json FROM submissions WHERE scored=0 ORDER BY submitted_at`)
}

func (s *SQLStore) querySubmissions(ctx context.Context, q string, args ...any) ([]*Submission, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Submission
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		sub, err := decodeSubmission(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func decodeSubmission(doc string) (*Submission, error) {
	var sub Submission
	if err := json.Unmarshal([]byte(doc), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
