package scoring

import "github.com/bandnine/ielts-platform/internal/exam"

// bandRow maps a minimum raw score to an IELTS band. Tables are kept in
// descending threshold order and scanned top-down: the first threshold at
// or below the raw score wins.
type bandRow struct {
	MinRaw int
	Band   float64
}

type bandTable []bandRow

// Official-style conversion tables on the 40-question scale. Listening and
// Reading differ slightly in the middle thresholds.
var listeningBands = bandTable{
	{39, 9.0}, {37, 8.5}, {35, 8.0}, {32, 7.5}, {30, 7.0}, {26, 6.5},
	{23, 6.0}, {18, 5.5}, {16, 5.0}, {13, 4.5}, {10, 4.0}, {8, 3.5},
	{6, 3.0}, {4, 2.5}, {3, 2.0}, {2, 1.5}, {1, 1.0}, {0, 0.0},
}

var readingBands = bandTable{
	{39, 9.0}, {37, 8.5}, {35, 8.0}, {33, 7.5}, {30, 7.0}, {27, 6.5},
	{23, 6.0}, {19, 5.5}, {15, 5.0}, {13, 4.5}, {10, 4.0}, {8, 3.5},
	{6, 3.0}, {4, 2.5}, {3, 2.0}, {2, 1.5}, {1, 1.0}, {0, 0.0},
}

var bandTables = map[exam.Section]bandTable{
	exam.SectionListening: listeningBands,
	exam.SectionReading:   readingBands,
}

// RegisterBandTable binds a conversion table to a section, replacing any
// existing one.
func RegisterBandTable(section exam.Section, t bandTable) { bandTables[section] = t }

// RawScoreToBand converts a raw correct count to a band score for the given
// section. Sections without a table (Writing is manually banded and must
// never reach here) and empty sections convert to 0.0.
func RawScoreToBand(correct, total int, section exam.Section) float64 {
	if total == 0 {
		return 0.0
	}
	table, ok := bandTables[section]
	if !ok {
		return 0.0
	}
	for _, row := range table {
		if correct >= row.MinRaw {
			return row.Band
		}
	}
	return 0.0
}
