// Package ingest turns heterogeneous exam packages (ZIP of XHTML assessment
// items, or structured JSON) into the normalized question model. Parsing is
// pure computation over the package bytes: asset upload and persistence are
// the caller's job.
package ingest

import (
	"github.com/bandnine/ielts-platform/internal/exam"
)

// Format names a registered package format.
type Format string

const (
	FormatZip  Format = "zip"
	FormatJSON Format = "json"
)

// Parser converts one package format into a NormalizedExam.
type Parser interface {
	Parse(data []byte, titleHint string) (*exam.NormalizedExam, error)
}

// Registry of parsers by format key. Subfiles register themselves from init().
var registry = map[Format]Parser{}

// Register binds a parser to a format key.
func Register(f Format, p Parser) { registry[f] = p }

// Lookup returns a registered parser for a format.
func Lookup(f Format) (Parser, bool) { p, ok := registry[f]; return p, ok }

// Parse is the ingestion entry point: dispatch by declared format.
func Parse(data []byte, format Format, titleHint string) (*exam.NormalizedExam, error) {
	p, ok := Lookup(format)
	if !ok {
		return nil, parseErr(InvalidFormat, "unsupported package format "+string(format), nil)
	}
	return p.Parse(data, titleHint)
}

func init() {
	Register(FormatZip, zipParser{})
	Register(FormatJSON, jsonParser{})
}
