// Package eventlog records ingestion and scoring events for auditing. The
// devserver runs without one; pass a nil *Repo and Append becomes a no-op.
package eventlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeExamIngested      = "ExamIngested"
	TypeSubmissionScored  = "SubmissionScored"
	TypeManualBandApplied = "ManualBandApplied"
)

type Event struct {
	Seq       int64
	Type      string
	Key       string // natural key: examID or submissionID
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	if r == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
