package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/bandnine/ielts-platform/internal/exam"
)

// zipParser extracts exam structure from a ZIP of XHTML assessment items
// plus loose asset files (images, audio, css).
type zipParser struct{}

func (zipParser) Parse(data []byte, titleHint string) (*exam.NormalizedExam, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, parseErr(CorruptArchive, "cannot open zip archive", err)
	}

	ex := &exam.NormalizedExam{
		Title:  titleHint,
		Type:   "full_test",
		Assets: &exam.Assets{},
	}

	var questionFiles []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := f.Name
		switch {
		case strings.HasSuffix(name, ".xhtml") && !strings.Contains(name, "instructions"):
			questionFiles = append(questionFiles, f)
		case hasExt(name, ".png", ".jpg", ".jpeg", ".gif", ".svg"):
			if a, ok := readAssetOrSkip(f); ok {
				ex.Assets.Images = append(ex.Assets.Images, a)
			}
		case hasExt(name, ".mp3", ".ogg", ".wav", ".m4a"):
			if a, ok := readAssetOrSkip(f); ok {
				ex.Assets.Audio = append(ex.Assets.Audio, a)
			}
		case hasExt(name, ".css"):
			if a, ok := readAssetOrSkip(f); ok {
				ex.Assets.CSS = append(ex.Assets.CSS, a)
			}
		}
	}

	// The question counter runs across all files in enumeration order and is
	// never reset, so numbers stay dense over the whole exam.
	number := 1
	sections := map[exam.Section]*exam.SectionInfo{}
	var sectionOrder []exam.Section

	for _, f := range questionFiles {
		content, err := readAll(f)
		if err != nil {
			return nil, parseErr(CorruptArchive, "cannot read entry "+f.Name, err)
		}

		section := sectionFromPath(f.Name)
		qtype := DetectFromPath(f.Name)

		sec, ok := sections[section]
		if !ok {
			sec = &exam.SectionInfo{Name: section}
			sections[section] = sec
			sectionOrder = append(sectionOrder, section)
		}
		if !containsType(sec.QuestionTypes, qtype) {
			sec.QuestionTypes = append(sec.QuestionTypes, qtype)
		}

		questions := parseQuestionMarkup(content, qtype, section, number)
		ex.Questions = append(ex.Questions, questions...)
		number += len(questions)
		sec.QuestionCount += len(questions)
	}

	ex.TotalQuestions = number - 1
	for _, name := range sectionOrder {
		ex.Sections = append(ex.Sections, *sections[name])
	}
	return ex, nil
}

// parseQuestionMarkup pulls Question records out of one XHTML file. The
// primary selector is the assessment-item marker; when nothing matches we
// fall back to elements whose id/class merely suggest a question and
// synthesize minimal records.
func parseQuestionMarkup(content []byte, qtype exam.QuestionType, section exam.Section, startNumber int) []exam.Question {
	doc, err := parseXHTML(content)
	if err != nil {
		return nil
	}

	var questions []exam.Question
	items := doc.findAll(func(n *xnode) bool {
		return n.attr("connect:class") == "assessmentItemRef"
	})

	for i, item := range items {
		q := exam.Question{
			ID:      item.attr("connect:identifier"),
			Number:  startNumber + i,
			Type:    qtype,
			Section: section,
			Points:  1,
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q_%d", q.Number)
		}
		if t := item.first(byClass("question-text"), byClass("stimulus"), byTag("p")); t != nil {
			q.Text = t.textContent()
		}

		switch qtype {
		case exam.TypeMCQSingle, exam.TypeMCQMultiple:
			opts := item.findAll(func(n *xnode) bool {
				return n.hasClass("option") || n.hasClass("choice")
			})
			for j, opt := range opts {
				q.Options = append(q.Options, exam.Option{
					ID:      fmt.Sprintf("opt_%d", j),
					Text:    opt.textContent(),
					Correct: opt.hasClass("correct") || opt.attr("connect:correct") == "true",
				})
			}
		case exam.TypeTrueFalseNG:
			q.Options = []exam.Option{
				{ID: "true", Text: "True"},
				{ID: "false", Text: "False"},
				{ID: "not_given", Text: "Not Given"},
			}
		case exam.TypeFillGaps, exam.TypeFillGapsShort, exam.TypeSentenceCompletion:
			q.InputType = "text"
			q.MaxLength = 50
		default:
			q.InputType = "text"
		}

		questions = append(questions, q)
	}

	if len(questions) > 0 {
		return questions
	}

	// Secondary heuristic: no assessment items matched.
	fallback := doc.findAll(func(n *xnode) bool {
		if n.tag == "div" && strings.HasPrefix(n.attr("id"), "question") {
			return true
		}
		if n.tag == "li" && n.hasClass("question") {
			return true
		}
		return n.hasClass("question-item")
	})
	for i, elem := range fallback {
		q := exam.Question{
			ID:        fmt.Sprintf("q_%d", startNumber+i),
			Number:    startNumber + i,
			Type:      qtype,
			Section:   section,
			Points:    1,
			InputType: "text",
		}
		if t := elem.first(byTag("p"), byClass("question-text")); t != nil {
			q.Text = t.textContent()
		}
		if q.Text == "" {
			q.Text = fmt.Sprintf("Question %d", q.Number)
		}
		questions = append(questions, q)
	}
	return questions
}

// readAssetOrSkip reads an asset entry; unreadable assets are logged and
// dropped rather than failing the whole package, unlike question files.
func readAssetOrSkip(f *zip.File) (exam.Asset, bool) {
	a, err := readAsset(f)
	if err != nil {
		log.Printf("zip ingest: skipping unreadable asset %s: %v", f.Name, err)
		return exam.Asset{}, false
	}
	return a, true
}

func readAsset(f *zip.File) (exam.Asset, error) {
	data, err := readAll(f)
	if err != nil {
		return exam.Asset{}, err
	}
	return exam.Asset{Name: path.Base(f.Name), Data: data}, nil
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func hasExt(name string, exts ...string) bool {
	lower := strings.ToLower(name)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

func containsType(ts []exam.QuestionType, t exam.QuestionType) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
