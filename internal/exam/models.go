package exam

import "time"

type Option struct {
	ID      string `json:"id,omitempty"`
	Text    string `json:"text,omitempty"`
	Correct bool   `json:"correct,omitempty"`
}

// Question is one assessable unit. CorrectAnswer carries whatever shape the
// source package declared: a string, a list of acceptable strings, or a
// key->value map for matching types. It round-trips through encoding/json
// as string, []interface{}, or map[string]interface{}.
type Question struct {
	ID            string       `json:"id"`
	Number        int          `json:"number"`
	Type          QuestionType `json:"type"`
	Section       Section      `json:"section"`
	Text          string       `json:"text,omitempty"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer any          `json:"correctAnswer,omitempty"`
	Points        int          `json:"points"`

	InputType string `json:"inputType,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`

	// Reading passage context.
	PassageNumber int    `json:"passageNumber,omitempty"`
	PassageTitle  string `json:"passageTitle,omitempty"`
	PassageText   string `json:"passageText,omitempty"`

	// Listening.
	AudioTimestamp float64 `json:"audioTimestamp,omitempty"`

	// Writing tasks.
	Title          string   `json:"title,omitempty"`
	Instructions   string   `json:"instructions,omitempty"`
	Prompt         string   `json:"prompt,omitempty"`
	WordLimit      int      `json:"wordLimit,omitempty"`
	TimeAllocation int      `json:"timeAllocation,omitempty"`
	Criteria       []string `json:"criteria,omitempty"`
}

type SectionInfo struct {
	Name          Section        `json:"name"`
	QuestionTypes []QuestionType `json:"questionTypes"`
	QuestionCount int            `json:"questionCount"`
	AudioFile     string         `json:"audioFile,omitempty"`
	AudioURL      string         `json:"audioUrl,omitempty"`
}

// Asset is a file extracted from an exam package. Bytes are carried only
// until the caller uploads them somewhere durable; URL is filled in by the
// caller after upload.
type Asset struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
	URL  string `json:"url,omitempty"`
}

type Assets struct {
	Images []Asset `json:"images,omitempty"`
	Audio  []Asset `json:"audio,omitempty"`
	CSS    []Asset `json:"css,omitempty"`
}

// NormalizedExam is the canonical ingestion output, independent of whether
// the source package was a ZIP of assessment items or structured JSON.
// It is immutable after construction; edits mean re-ingestion.
type NormalizedExam struct {
	ID             string        `json:"id,omitempty"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Type           string        `json:"type"` // practice|full_test|mock
	Duration       int           `json:"duration,omitempty"`
	Sections       []SectionInfo `json:"sections"`
	Questions      []Question    `json:"questions"`
	TotalQuestions int           `json:"totalQuestions"`
	AudioFile      string        `json:"audioFile,omitempty"`
	AudioURL       string        `json:"audioUrl,omitempty"`
	Assets         *Assets       `json:"assets,omitempty"`
	CreatedAt      int64         `json:"createdAt,omitempty"`
}

// Submission is one student attempt. The core reads Answers and writes the
// scoring fields; everything else is caller metadata.
type Submission struct {
	ID          string         `json:"id"`
	ExamID      string         `json:"examId"`
	StudentID   string         `json:"studentId"`
	Answers     map[string]any `json:"answers"`
	TimeSpent   int            `json:"timeSpent,omitempty"`
	SubmittedAt string         `json:"submittedAt,omitempty"`
	Status      string         `json:"status,omitempty"` // submitted|scored

	*ScoringResult
}

type QuestionResult struct {
	QuestionID        string       `json:"questionId"`
	QuestionNumber    int          `json:"questionNumber"`
	QuestionType      QuestionType `json:"questionType"`
	UserAnswer        any          `json:"userAnswer"`
	CorrectAnswer     any          `json:"correctAnswer"`
	IsCorrect         bool         `json:"isCorrect"`
	Points            int          `json:"points"`
	MaxPoints         int          `json:"maxPoints"`
	Feedback          string       `json:"feedback,omitempty"`
	NeedsManualReview bool         `json:"needsManualReview,omitempty"`
}

const (
	StatusAutoScored   = "auto_scored"
	StatusManualReview = "manual_review"
	StatusManualScored = "manual_scored"
)

// SectionScore aggregates results for one section. BandScore stays nil while
// the section is pending manual review; such sections are excluded from the
// overall average.
type SectionScore struct {
	TotalQuestions    int      `json:"totalQuestions"`
	CorrectAnswers    int      `json:"correctAnswers"`
	TotalPoints       int      `json:"totalPoints"`
	MaxPoints         int      `json:"maxPoints"`
	RawScore          int      `json:"rawScore"`
	BandScore         *float64 `json:"bandScore"`
	NeedsManualReview bool     `json:"needsManualReview"`
	Status            string   `json:"status"`
}

type ScoringResult struct {
	Scored           bool                      `json:"scored"`
	ScoredAt         time.Time                 `json:"scoredAt"`
	SectionScores    map[Section]*SectionScore `json:"sectionScores"`
	QuestionResults  []QuestionResult          `json:"questionResults"`
	OverallBandScore float64                   `json:"overallBandScore"`
	TotalCorrect     int                       `json:"totalCorrect"`
	TotalQuestions   int                       `json:"totalQuestions"`
	Percentage       int                       `json:"percentage"`
}
