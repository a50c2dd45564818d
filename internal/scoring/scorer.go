// Package scoring turns a normalized exam plus a student's raw answers into
// IELTS band scores per section and overall. Scoring is a pure function over
// its inputs: no I/O, no shared state, and the only time dependency is the
// scoredAt stamp, taken from an injectable clock.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bandnine/ielts-platform/internal/exam"
)

var (
	ErrExamMissing    = errors.New("scoring: exam missing or empty")
	ErrAnswersMissing = errors.New("scoring: answers missing")
)

type Scorer struct {
	grader *Grader
	now    func() time.Time
}

type Option func(*Scorer)

// WithClock overrides the scoredAt clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithGrader swaps the per-question grader.
func WithGrader(g *Grader) Option {
	return func(s *Scorer) { s.grader = g }
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{grader: NewGrader(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score grades every question and aggregates per section. It never fails
// mid-scoring: every question produces some QuestionResult, defaulting to
// incorrect rather than erroring, so totals are always conserved.
func (s *Scorer) Score(ex *exam.NormalizedExam, answers map[string]any) (*exam.ScoringResult, error) {
	if ex == nil {
		return nil, ErrExamMissing
	}
	if answers == nil {
		return nil, ErrAnswersMissing
	}

	res := &exam.ScoringResult{
		SectionScores: map[exam.Section]*exam.SectionScore{},
	}

	for _, q := range ex.Questions {
		answer := lookupAnswer(answers, q)
		outcome := s.grader.Score(q, answer)

		maxPoints := q.Points
		if maxPoints < 1 {
			maxPoints = 1
		}
		qr := exam.QuestionResult{
			QuestionID:        q.ID,
			QuestionNumber:    q.Number,
			QuestionType:      q.Type,
			UserAnswer:        answer,
			CorrectAnswer:     q.CorrectAnswer,
			IsCorrect:         outcome.Correct,
			MaxPoints:         maxPoints,
			Feedback:          outcome.Feedback,
			NeedsManualReview: outcome.NeedsManualReview,
		}
		switch {
		case outcome.NeedsManualReview:
			// feedback already set by the strategy
		case outcome.Correct:
			qr.Points = maxPoints
			qr.Feedback = "Correct!"
		case qr.Feedback == "":
			qr.Feedback = "Incorrect. The correct answer is: " + describeAnswer(q.CorrectAnswer)
		}
		res.QuestionResults = append(res.QuestionResults, qr)

		section := q.Section
		if section == "" {
			section = exam.SectionUnknown
		}
		ss, ok := res.SectionScores[section]
		if !ok {
			ss = &exam.SectionScore{}
			res.SectionScores[section] = ss
		}
		ss.TotalQuestions++
		ss.MaxPoints += qr.MaxPoints
		ss.TotalPoints += qr.Points
		if qr.IsCorrect {
			ss.CorrectAnswers++
		}
		if qr.NeedsManualReview {
			ss.NeedsManualReview = true
		}
	}

	// A section containing any manual-review question is deferred whole:
	// its band stays nil and it is excluded from the overall average.
	for section, ss := range res.SectionScores {
		if ss.NeedsManualReview {
			ss.BandScore = nil
			ss.Status = exam.StatusManualReview
			continue
		}
		ss.RawScore = ss.CorrectAnswers
		band := RawScoreToBand(ss.CorrectAnswers, ss.TotalQuestions, section)
		ss.BandScore = &band
		ss.Status = exam.StatusAutoScored
	}

	res.OverallBandScore = overallBand(res.SectionScores)
	for _, ss := range res.SectionScores {
		res.TotalCorrect += ss.CorrectAnswers
	}
	res.TotalQuestions = len(ex.Questions)
	if res.TotalQuestions > 0 {
		res.Percentage = int(math.Round(float64(res.TotalCorrect) / float64(res.TotalQuestions) * 100))
	}
	res.Scored = true
	res.ScoredAt = s.now()
	return res, nil
}

// ApplyManualBand records a human grader's band for a manual-review section
// and recomputes the overall average.
func ApplyManualBand(res *exam.ScoringResult, section exam.Section, band float64) error {
	if res == nil {
		return errors.New("scoring: no scoring result")
	}
	ss, ok := res.SectionScores[section]
	if !ok {
		return fmt.Errorf("scoring: no section %q in result", section)
	}
	if ss.Status != exam.StatusManualReview {
		return fmt.Errorf("scoring: section %q is not pending manual review", section)
	}
	if band < 0 || band > 9 {
		return fmt.Errorf("scoring: band %.1f out of range", band)
	}
	ss.BandScore = &band
	ss.Status = exam.StatusManualScored
	res.OverallBandScore = overallBand(res.SectionScores)
	return nil
}

// overallBand averages the banded sections, rounded to the nearest 0.5.
// With no banded sections the overall is 0.
func overallBand(sections map[exam.Section]*exam.SectionScore) float64 {
	sum, n := 0.0, 0
	for _, ss := range sections {
		if ss.BandScore != nil {
			sum += *ss.BandScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*2) / 2
}

// lookupAnswer resolves the student's raw answer by question id, falling
// back to the number-derived key.
func lookupAnswer(answers map[string]any, q exam.Question) any {
	if v, ok := answers[q.ID]; ok && v != nil {
		return v
	}
	if v, ok := answers[fmt.Sprintf("q_%d", q.Number)]; ok {
		return v
	}
	return nil
}

func describeAnswer(v any) string {
	if v == nil {
		return "See answer key"
	}
	return fmt.Sprintf("%v", v)
}
