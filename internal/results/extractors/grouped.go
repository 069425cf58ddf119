// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"
	"strings"

	"github.com/resultsproj/results-mcp/internal/results"
)

// Grouped extracts the oldest layout: a numbered subject catalog followed by
// fixed-width rows of the form <studentId> <grade>{N} <sgpa>, where N is the
// catalog length.
type Grouped struct {
	policy results.Policy
	rollRe *regexp.Regexp
}

// NewGrouped compiles the policy's roll-number grammar into the strategy.
func NewGrouped(policy results.Policy) *Grouped {
	return &Grouped{policy: policy, rollRe: regexp.MustCompile(policy.RollPattern)}
}

func (e *Grouped) Format() results.Format { return results.FormatGrouped }

func (e *Grouped) NeedsCatalog() bool { return true }

// Extract scans line by line for fixed-width grade rows. A candidate row is
// rejected (and counted) when its id fails the roll grammar or its grade run
// does not match the catalog width; rejected rows are never truncated to
// fit. With an empty catalog only zero-subject rows can be accepted and
// their SGPA is forced to 0.00.
func (e *Grouped) Extract(_ context.Context, text string, catalog []results.SubjectDescriptor, meta results.DocumentMeta) ([]results.StudentRecord, int) {
	var records []results.StudentRecord
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		row, ok := parseGradeRow(line, false)
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
		// The row's own SGPA column is authoritative, even when it
		// disagrees with what the grades would compute to.
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
			Format:      results.FormatGrouped,
		})
	}
	return records, skipped
}
