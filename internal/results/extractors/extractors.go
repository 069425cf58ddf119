// SPDX-License-Identifier: Apache-2.0

// Package extractors holds one extraction strategy per result-document
// format, all behind the results.RecordExtractor interface. Each strategy is
// a line-scoped row grammar: a line is first tested for candidacy (does it
// have the format's token shape at all), and only candidate lines that then
// fail a field check count toward the skip total. Header lines, prose, and
// page furniture are never counted.
package extractors

import (
	"strconv"
	"strings"

	"github.com/resultsproj/results-mcp/internal/results"
)

// All returns the three default strategies configured with the given policy.
func All(policy results.Policy) []results.RecordExtractor {
	return []results.RecordExtractor{
		NewGrouped(policy),
		NewTabular(policy),
		NewMatrix(policy),
	}
}

// gradeRow is a tokenized fixed-width row: a student id, a run of grade
// symbols, and a trailing SGPA. Grouped and Matrix share this shape; Matrix
// additionally allows a leading serial number.
type gradeRow struct {
	studentID string
	grades    []string
	sgpa      float64
}

// parseGradeRow tokenizes one line against the fixed-width row shape. The
// boolean reports candidacy only; the id grammar and the grade-run width are
// checked by the caller so their failures can be counted.
func parseGradeRow(line string, allowSerial bool) (gradeRow, bool) {
	tokens := strings.Fields(line)
	if allowSerial && len(tokens) > 0 && isSerial(tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 {
		return gradeRow{}, false
	}
	last := tokens[len(tokens)-1]
	if !isSGPAToken(last) {
		return gradeRow{}, false
	}
	grades := tokens[1 : len(tokens)-1]
	for _, g := range grades {
		if !results.IsGradeSymbol(g) {
			return gradeRow{}, false
		}
	}
	sgpa, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return gradeRow{}, false
	}
	return gradeRow{studentID: tokens[0], grades: grades, sgpa: sgpa}, true
}

// zipCatalog builds the positional subject list for a fixed-width grade run.
// The caller guarantees len(grades) == len(catalog).
func zipCatalog(catalog []results.SubjectDescriptor, grades []string) []results.SubjectResult {
	subjects := make([]results.SubjectResult, len(grades))
	for i, grade := range grades {
		subjects[i] = results.SubjectResult{
			Code:    catalog[i].Code,
			Title:   catalog[i].Title,
			Grade:   strings.ToUpper(grade),
			Credits: catalog[i].Credits,
		}
	}
	return subjects
}

func isSerial(token string) bool {
	if len(token) == 0 || len(token) > 4 {
		return false
	}
	return allDigits(token)
}

// isSGPAToken matches the two-decimal SGPA column, e.g. "9.50" or "0.00".
func isSGPAToken(token string) bool {
	dot := strings.IndexByte(token, '.')
	if dot < 1 || dot > 2 {
		return false
	}
	return allDigits(token[:dot]) && len(token) == dot+3 && allDigits(token[dot+1:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
