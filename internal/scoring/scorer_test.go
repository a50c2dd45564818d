package scoring

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bandnine/ielts-platform/internal/exam"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

// listeningExam builds a 40-question listening paper whose answer key is the
// question number as a string.
func listeningExam() *exam.NormalizedExam {
	ex := &exam.NormalizedExam{Title: "Listening Full", Type: "listening"}
	for i := 1; i <= 40; i++ {
		ex.Questions = append(ex.Questions, exam.Question{
			ID:            fmt.Sprintf("q_%d", i),
			Number:        i,
			Type:          exam.TypeFillGaps,
			Section:       exam.SectionListening,
			CorrectAnswer: fmt.Sprintf("%d", i),
		})
	}
	ex.TotalQuestions = len(ex.Questions)
	return ex
}

func TestScoreFullMarks(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	ex := listeningExam()
	answers := map[string]any{}
	for i := 1; i <= 40; i++ {
		answers[fmt.Sprintf("q_%d", i)] = fmt.Sprintf("%d", i)
	}

	res, err := s.Score(ex, answers)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.TotalCorrect != 40 || res.TotalQuestions != 40 || res.Percentage != 100 {
		t.Errorf("totals = %d/%d %d%%", res.TotalCorrect, res.TotalQuestions, res.Percentage)
	}
	ss := res.SectionScores[exam.SectionListening]
	if ss == nil || ss.BandScore == nil {
		t.Fatalf("listening section not banded: %+v", ss)
	}
	if *ss.BandScore != 9.0 || ss.Status != exam.StatusAutoScored || ss.RawScore != 40 {
		t.Errorf("section = %+v", ss)
	}
	if res.OverallBandScore != 9.0 {
		t.Errorf("overall = %.1f, want 9.0", res.OverallBandScore)
	}
	if !res.Scored || !res.ScoredAt.Equal(fixedClock()) {
		t.Errorf("scored stamp = %v/%v", res.Scored, res.ScoredAt)
	}
}

func TestScoreAnswerLookupFallsBackToNumberKey(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	ex := &exam.NormalizedExam{Questions: []exam.Question{
		{ID: "custom-id", Number: 7, Type: exam.TypeFillGaps,
			Section: exam.SectionReading, CorrectAnswer: "tides"},
	}}

	// The id key is absent; the number-derived key must still resolve.
	res, err := s.Score(ex, map[string]any{"q_7": "tides"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.TotalCorrect != 1 {
		t.Errorf("number-key fallback did not resolve: %+v", res.QuestionResults[0])
	}

	// A nil value under the id key also falls through to the number key.
	res, err = s.Score(ex, map[string]any{"custom-id": nil, "q_7": "tides"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.TotalCorrect != 1 {
		t.Errorf("nil id value should fall through: %+v", res.QuestionResults[0])
	}
}

func TestScoreWritingSectionDeferredWhole(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	ex := &exam.NormalizedExam{Questions: []exam.Question{
		{ID: "r1", Number: 1, Type: exam.TypeTrueFalseNG,
			Section: exam.SectionReading, CorrectAnswer: "True"},
		{ID: "writing_task_1", Number: 1, Type: exam.TypeWritingTask1,
			Section: exam.SectionWriting},
	}}
	res, err := s.Score(ex, map[string]any{
		"r1":             "True",
		"writing_task_1": "An essay about tides.",
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	writing := res.SectionScores[exam.SectionWriting]
	if writing.BandScore != nil || writing.Status != exam.StatusManualReview {
		t.Errorf("writing section = %+v, want deferred", writing)
	}
	reading := res.SectionScores[exam.SectionReading]
	if reading.BandScore == nil || *reading.BandScore != 1.0 {
		t.Errorf("reading section = %+v", reading)
	}
	// Deferred sections are excluded from the overall average, not zeroed.
	if res.OverallBandScore != 1.0 {
		t.Errorf("overall = %.1f, want 1.0 (reading only)", res.OverallBandScore)
	}
}

func TestScoreOverallRoundsToHalfBand(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	// Listening 30/40 -> 7.0, reading 23/40 -> 6.0. Mean 6.5.
	ex := &exam.NormalizedExam{}
	answers := map[string]any{}
	for i := 1; i <= 40; i++ {
		lid := fmt.Sprintf("l%d", i)
		rid := fmt.Sprintf("r%d", i)
		ex.Questions = append(ex.Questions,
			exam.Question{ID: lid, Number: i, Type: exam.TypeFillGaps,
				Section: exam.SectionListening, CorrectAnswer: "yes"},
			exam.Question{ID: rid, Number: i, Type: exam.TypeFillGaps,
				Section: exam.SectionReading, CorrectAnswer: "yes"},
		)
		if i <= 30 {
			answers[lid] = "yes"
		}
		if i <= 23 {
			answers[rid] = "yes"
		}
	}

	res, err := s.Score(ex, answers)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if b := res.SectionScores[exam.SectionListening].BandScore; b == nil || *b != 7.0 {
		t.Fatalf("listening band = %v", b)
	}
	if b := res.SectionScores[exam.SectionReading].BandScore; b == nil || *b != 6.0 {
		t.Fatalf("reading band = %v", b)
	}
	if res.OverallBandScore != 6.5 {
		t.Errorf("overall = %.1f, want 6.5", res.OverallBandScore)
	}
	wantPct := 66 // round(53/80*100)
	if res.Percentage != wantPct {
		t.Errorf("percentage = %d, want %d", res.Percentage, wantPct)
	}
}

func TestScoreUnansweredQuestionsStayIncorrect(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	ex := &exam.NormalizedExam{Questions: []exam.Question{
		{ID: "q_1", Number: 1, Type: exam.TypeTrueFalseNG,
			Section: exam.SectionReading, CorrectAnswer: "True"},
		{ID: "q_2", Number: 2, Type: exam.TypeTrueFalseNG,
			Section: exam.SectionReading, CorrectAnswer: "False"},
	}}
	res, err := s.Score(ex, map[string]any{"q_1": "True"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(res.QuestionResults) != 2 {
		t.Fatalf("results = %d, want every question represented", len(res.QuestionResults))
	}
	qr := res.QuestionResults[1]
	if qr.IsCorrect || qr.Points != 0 {
		t.Errorf("unanswered question = %+v", qr)
	}
	if qr.Feedback == "" {
		t.Error("incorrect answers should carry feedback")
	}
	if res.TotalCorrect != 1 || res.Percentage != 50 {
		t.Errorf("totals = %d correct, %d%%", res.TotalCorrect, res.Percentage)
	}
}

func TestScoreInputValidation(t *testing.T) {
	s := NewScorer()
	if _, err := s.Score(nil, map[string]any{}); !errors.Is(err, ErrExamMissing) {
		t.Errorf("nil exam err = %v", err)
	}
	if _, err := s.Score(&exam.NormalizedExam{}, nil); !errors.Is(err, ErrAnswersMissing) {
		t.Errorf("nil answers err = %v", err)
	}
	// An exam with no questions scores to empty, not an error.
	res, err := s.Score(&exam.NormalizedExam{}, map[string]any{})
	if err != nil {
		t.Fatalf("empty exam: %v", err)
	}
	if res.TotalQuestions != 0 || res.Percentage != 0 || res.OverallBandScore != 0 {
		t.Errorf("empty exam result = %+v", res)
	}
}

func TestApplyManualBand(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	ex := &exam.NormalizedExam{Questions: []exam.Question{
		{ID: "r1", Number: 1, Type: exam.TypeTrueFalseNG,
			Section: exam.SectionReading, CorrectAnswer: "True"},
		{ID: "writing_task_1", Number: 1, Type: exam.TypeWritingTask2,
			Section: exam.SectionWriting},
	}}
	res, err := s.Score(ex, map[string]any{"r1": "True", "writing_task_1": "essay"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if err := ApplyManualBand(res, exam.SectionWriting, 6.0); err != nil {
		t.Fatalf("ApplyManualBand: %v", err)
	}
	writing := res.SectionScores[exam.SectionWriting]
	if writing.BandScore == nil || *writing.BandScore != 6.0 ||
		writing.Status != exam.StatusManualScored {
		t.Errorf("writing after manual band = %+v", writing)
	}
	// Reading 1/1 -> 1.0; mean of 1.0 and 6.0 = 3.5.
	if res.OverallBandScore != 3.5 {
		t.Errorf("overall = %.1f, want 3.5", res.OverallBandScore)
	}

	// A second application must fail: the section is no longer pending.
	if err := ApplyManualBand(res, exam.SectionWriting, 7.0); err == nil {
		t.Error("re-banding a scored section should fail")
	}
	if err := ApplyManualBand(res, exam.SectionReading, 5.0); err == nil {
		t.Error("banding an auto-scored section should fail")
	}
	if err := ApplyManualBand(res, exam.Section("Speaking"), 5.0); err == nil {
		t.Error("banding an absent section should fail")
	}
}

func TestApplyManualBandRange(t *testing.T) {
	res := &exam.ScoringResult{SectionScores: map[exam.Section]*exam.SectionScore{
		exam.SectionWriting: {Status: exam.StatusManualReview},
	}}
	for _, band := range []float64{-0.5, 9.5, 100} {
		if err := ApplyManualBand(res, exam.SectionWriting, band); err == nil {
			t.Errorf("band %.1f accepted", band)
		}
	}
	if err := ApplyManualBand(nil, exam.SectionWriting, 5.0); err == nil {
		t.Error("nil result accepted")
	}
}
