// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"
	"strings"

	"github.com/resultsproj/results-mcp/internal/results"
)

// Matrix extracts the layout where subject codes form a wide column header
// and each student is one fixed-width row: <serial>? <studentId> <grade>{N}
// <sgpa>. The catalog is the header run (or the numbered declaration when
// both are present), so N is fixed before row scanning starts.
type Matrix struct {
	policy results.Policy
	rollRe *regexp.Regexp
}

// NewMatrix compiles the policy's roll-number grammar into the strategy.
func NewMatrix(policy results.Policy) *Matrix {
	return &Matrix{policy: policy, rollRe: regexp.MustCompile(policy.RollPattern)}
}

func (e *Matrix) Format() results.Format { return results.FormatMatrix }

func (e *Matrix) NeedsCatalog() bool { return true }

// Extract applies the same acceptance rules as Grouped, with an optional
// leading serial token. Credits come from the catalog, where the naming
// heuristics (lab 1.5, project 2.0, seminar 1.0) were already applied.
func (e *Matrix) Extract(_ context.Context, text string, catalog []results.SubjectDescriptor, meta results.DocumentMeta) ([]results.StudentRecord, int) {
	var records []results.StudentRecord
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		row, ok := parseGradeRow(line, true)
		if !ok {
			continue
		}
		if !e.rollRe.MatchString(row.studentID) {
			skipped++
			continue
		}
		if len(row.grades) != len(catalog) {
			skipped++
			continue
		}

		subjects := zipCatalog(catalog, row.grades)
		// As in Grouped, the row's own SGPA column is authoritative.
		sgpa := row.sgpa
		if len(catalog) == 0 {
			sgpa = 0.0
		}
		records = append(records, results.StudentRecord{
			StudentID:   row.studentID,
			Semester:    meta.Semester,
			Program:     meta.Program,
			Institution: meta.Institution,
			Subjects:    subjects,
			SGPA:        sgpa,
			Format:      results.FormatMatrix,
		})
	}
	return records, skipped
}
