package exam

import (
	"context"
	"errors"
)

var (
	ErrExamNotFound       = errors.New("exam not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Store persists normalized exams and submissions. The parsing and scoring
// core never touches a Store; handlers load/save around the pure functions,
// so any backing implementation (SQL, in-memory) works the same.
type Store interface {
	PutExam(ctx context.Context, e *NormalizedExam) error
	GetExam(ctx context.Context, id string) (*NormalizedExam, error)
	ListExams(ctx context.Context) ([]*NormalizedExam, error)

	PutSubmission(ctx context.Context, s *Submission) error
	GetSubmission(ctx context.Context, id string) (*Submission, error)
	ListSubmissions(ctx context.Context, studentID string) ([]*Submission, error)
	ListUnscoredSubmissions(ctx context.Context) ([]*Submission, error)
}
