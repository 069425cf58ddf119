// SPDX-License-Identifier: Apache-2.0

package results

import "context"

// Format identifies one of the three result-document layouts observed in the
// wild. Detection is scored, never declared by the source itself.
type Format string

const (
	FormatGrouped Format = "grouped"
	FormatTabular Format = "tabular"
	FormatMatrix  Format = "matrix"
)

// RawPage is one page of text extracted from a source document, in document
// order. The engine never re-reads a page; pages are supplied once per parse.
type RawPage struct {
	Index int
	Text  string
}

// SubjectDescriptor is one entry of the reconstructed subject catalog.
// Grouped and Matrix rows are zipped positionally against the catalog.
type SubjectDescriptor struct {
	Code    string
	Title   string
	Credits float64
}

// SubjectResult is one subject's outcome for one student.
type SubjectResult struct {
	Code      string  `json:"code"`
	Title     string  `json:"subject"`
	Grade     string  `json:"grade"`
	Internals int     `json:"internals"`
	Credits   float64 `json:"credits"`
}

// StudentRecord is the normalized per-student result. Records are never
// mutated after an extractor returns them.
type StudentRecord struct {
	StudentID   string          `json:"student_id"`
	Semester    string          `json:"semester"`
	Program     string          `json:"program"`
	Institution string          `json:"university"`
	Subjects    []SubjectResult `json:"subjectGrades"`
	SGPA        float64         `json:"sgpa"`
	Format      Format          `json:"source_format"`
}

// DocumentMeta carries the labels stamped onto every record of one document.
type DocumentMeta struct {
	Semester    string
	Program     string
	Institution string
}

// RecordExtractor turns raw document text into an ordered sequence of
// StudentRecords for one format variant. Implementations are pure: the same
// text and catalog always yield the same ordered sequence. Rows that fail the
// format's grammar are skipped, not errored; skipped is the count of candidate
// rows rejected.
type RecordExtractor interface {
	Format() Format
	// NeedsCatalog reports whether Extract requires a reconstructed subject
	// catalog (Grouped and Matrix) or derives subjects per row (Tabular).
	NeedsCatalog() bool
	Extract(ctx context.Context, text string, catalog []SubjectDescriptor, meta DocumentMeta) (records []StudentRecord, skipped int)
}
