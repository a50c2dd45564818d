package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bandnine/ielts-platform/internal/exam"
)

// RawQuestion is a question as it appears in a source JSON package, before
// normalization. Answer keeps the source shape (string, list, or map).
type RawQuestion struct {
	ID             string        `json:"id"`
	Number         int           `json:"number"`
	Type           string        `json:"type"`
	Text           string        `json:"text"`
	Prompt         string        `json:"prompt"`
	Instructions   string        `json:"instructions"`
	Options        []exam.Option `json:"options"`
	Answer         any           `json:"answer"`
	Points         int           `json:"points"`
	AudioTimestamp float64       `json:"audioTimestamp"`

	PassageNumber int    `json:"passageNumber"`
	PassageTitle  string `json:"passageTitle"`
	PassageText   string `json:"passageText"`

	Title          string   `json:"title"`
	WordLimit      int      `json:"wordLimit"`
	TimeAllocation int      `json:"timeAllocation"`
	Criteria       []string `json:"criteria"`
}

type rawPassage struct {
	PassageNumber int           `json:"passageNumber"`
	Title         string        `json:"title"`
	Text          string        `json:"text"`
	Questions     []RawQuestion `json:"questions"`
}

type rawTask struct {
	TaskNumber     int      `json:"taskNumber"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Instructions   string   `json:"instructions"`
	Prompt         string   `json:"prompt"`
	WordLimit      int      `json:"wordLimit"`
	TimeAllocation int      `json:"timeAllocation"`
	Criteria       []string `json:"criteria"`
}

// jsonPackage mirrors the three accepted top-level shapes. Pointer slices
// distinguish "absent" from "present but empty": dispatch is on presence.
type jsonPackage struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Section     string         `json:"section"`
	Duration    int            `json:"duration"`
	AudioFile   string         `json:"audioFile"`
	Questions   *[]RawQuestion `json:"questions"`
	Passages    *[]rawPassage  `json:"passages"`
	Tasks       *[]rawTask     `json:"tasks"`
}

type jsonParser struct{}

func (jsonParser) Parse(data []byte, titleHint string) (*exam.NormalizedExam, error) {
	if !utf8.Valid(data) {
		return nil, parseErr(InvalidFormat, "package bytes are not valid UTF-8", nil)
	}
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, parseErr(InvalidFormat, "top-level JSON value must be an object", nil)
	}
	var pkg jsonPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, parseErr(InvalidFormat, "invalid JSON", err)
	}
	return normalizeJSON(&pkg, titleHint)
}

func normalizeJSON(pkg *jsonPackage, titleHint string) (*exam.NormalizedExam, error) {
	title := titleHint
	if title == "" {
		title = pkg.Title
	}
	if title == "" {
		title = "Untitled Exam"
	}

	examType := "practice"
	if pkg.Section != "" {
		examType = strings.ToLower(pkg.Section)
	}
	duration := pkg.Duration
	if duration == 0 {
		duration = 60
	}

	ex := &exam.NormalizedExam{
		Title:       title,
		Description: pkg.Description,
		Type:        examType,
		Duration:    duration,
	}

	var all []RawQuestion
	section := exam.ParseSection(pkg.Section)

	// Structural dispatch, first match wins: a package carrying both
	// questions and passages uses the questions branch only.
	switch {
	case pkg.Questions != nil:
		all = *pkg.Questions

		info := exam.SectionInfo{
			Name:          section,
			QuestionTypes: rawTypeSet(all),
			QuestionCount: len(all),
		}
		if section == exam.SectionListening && pkg.AudioFile != "" {
			info.AudioFile = pkg.AudioFile
			info.AudioURL = "/audio/" + pkg.AudioFile
			ex.AudioFile = pkg.AudioFile
			ex.AudioURL = "/audio/" + pkg.AudioFile
		}
		ex.Sections = append(ex.Sections, info)

	case pkg.Passages != nil:
		section = exam.SectionReading
		for i, p := range *pkg.Passages {
			pnum := p.PassageNumber
			if pnum == 0 {
				pnum = i + 1
			}
			ptitle := p.Title
			if ptitle == "" {
				ptitle = fmt.Sprintf("Passage %d", i+1)
			}
			for _, q := range p.Questions {
				q.PassageNumber = pnum
				q.PassageTitle = ptitle
				q.PassageText = p.Text
				all = append(all, q)
			}
		}
		ex.Sections = append(ex.Sections, exam.SectionInfo{
			Name:          section,
			QuestionTypes: rawTypeSet(all),
			QuestionCount: len(all),
		})

	case pkg.Tasks != nil:
		section = exam.SectionWriting
		for i, t := range *pkg.Tasks {
			n := t.TaskNumber
			if n == 0 {
				n = i + 1
			}
			title := t.Title
			if title == "" {
				title = fmt.Sprintf("Task %d", i+1)
			}
			typ := t.Type
			if typ == "" {
				typ = string(exam.TypeWritingTask1)
			}
			wordLimit := t.WordLimit
			if wordLimit == 0 {
				wordLimit = 150
			}
			timeAlloc := t.TimeAllocation
			if timeAlloc == 0 {
				timeAlloc = 20
			}
			all = append(all, RawQuestion{
				ID:             fmt.Sprintf("writing_task_%d", n),
				Number:         n,
				Type:           typ,
				Title:          title,
				Instructions:   t.Instructions,
				Prompt:         t.Prompt,
				WordLimit:      wordLimit,
				TimeAllocation: timeAlloc,
				Criteria:       t.Criteria,
				Points:         1,
			})
		}
		ex.Sections = append(ex.Sections, exam.SectionInfo{
			Name:          section,
			QuestionTypes: rawTypeSet(all),
			QuestionCount: len(all),
		})

	default:
		return nil, parseErr(InvalidStructure,
			"must contain questions, passages, or tasks", nil)
	}

	for i, raw := range all {
		ex.Questions = append(ex.Questions, normalizeQuestion(raw, section, i+1))
	}
	ex.TotalQuestions = len(ex.Questions)
	return ex, nil
}

// normalizeQuestion applies the uniform per-question rules after dispatch.
func normalizeQuestion(raw RawQuestion, section exam.Section, seq int) exam.Question {
	q := exam.Question{
		ID:      raw.ID,
		Number:  raw.Number,
		Type:    AutoDetect(raw),
		Section: section,
		Text:    firstNonEmpty(raw.Text, raw.Prompt, raw.Instructions),
		Points:  raw.Points,
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("q_%d", seq)
	}
	if q.Number == 0 {
		q.Number = seq
	}
	if q.Points == 0 {
		q.Points = 1
	}

	if raw.Options != nil {
		q.Options = raw.Options
	}
	if raw.Answer != nil {
		q.CorrectAnswer = raw.Answer
	}

	if raw.PassageNumber != 0 {
		q.PassageNumber = raw.PassageNumber
		q.PassageTitle = raw.PassageTitle
		q.PassageText = raw.PassageText
	}
	if raw.AudioTimestamp != 0 {
		q.AudioTimestamp = raw.AudioTimestamp
	}
	if q.Type.IsWriting() {
		q.Title = raw.Title
		q.Instructions = raw.Instructions
		q.Prompt = raw.Prompt
		q.WordLimit = raw.WordLimit
		q.TimeAllocation = raw.TimeAllocation
		q.Criteria = raw.Criteria
	}
	return q
}

// rawTypeSet collects the distinct declared types, preserving first-seen
// order; questions with no declared type count as "unknown".
func rawTypeSet(qs []RawQuestion) []exam.QuestionType {
	var out []exam.QuestionType
	seen := map[string]bool{}
	for _, q := range qs {
		t := q.Type
		if t == "" {
			t = string(exam.TypeUnknown)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, exam.QuestionType(t))
		}
	}
	return out
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
