// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/resultsproj/results-mcp/internal/results"
)

// subjectCodeTokenRe is the loose shape of a subject-code column token. The
// strict header shape from the policy does not apply here: tabular documents
// carry their own code column and older code series differ.
var subjectCodeTokenRe = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

// Tabular extracts the layout where every text line is one subject record:
// <serial> <studentId> <subjectCode> <title...> <internals> <grade>
// <credits>. Lines are grouped by student id preserving first-seen student
// order. The source carries no SGPA; it is always computed.
type Tabular struct {
	policy results.Policy
	rollRe *regexp.Regexp
}

// NewTabular compiles the policy's roll-number grammar into the strategy.
func NewTabular(policy results.Policy) *Tabular {
	return &Tabular{policy: policy, rollRe: regexp.MustCompile(policy.RollPattern)}
}

func (e *Tabular) Format() results.Format { return results.FormatTabular }

func (e *Tabular) NeedsCatalog() bool { return false }

// Extract tokenizes each line against the seven-column rule. Accumulation is
// a map local to this call, keyed by student id, with a separate slice
// preserving first-seen order; nothing is shared across invocations.
func (e *Tabular) Extract(_ context.Context, text string, _ []results.SubjectDescriptor, meta results.DocumentMeta) ([]results.StudentRecord, int) {
	perStudent := make(map[string][]results.SubjectResult)
	var order []string
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		if !isTabularCandidate(tokens) {
			continue
		}

		n := len(tokens)
		studentID := tokens[1]
		code := tokens[2]
		internalsTok := tokens[n-3]
		gradeTok := tokens[n-2]

		if !e.rollRe.MatchString(studentID) ||
			!subjectCodeTokenRe.MatchString(code) ||
			!results.IsGradeSymbol(gradeTok) {
			skipped++
			continue
		}
		internals, ok := parseInternals(internalsTok)
		if !ok {
			skipped++
			continue
		}
		credits, err := strconv.ParseFloat(tokens[n-1], 64)
		if err != nil {
			skipped++
			continue
		}

		if _, seen := perStudent[studentID]; !seen {
			order = append(order, studentID)
		}
		perStudent[studentID] = append(perStudent[studentID], results.SubjectResult{
			Code:      code,
			Title:     strings.Join(tokens[3:n-3], " "),
			Grade:     strings.ToUpper(gradeTok),
			Internals: internals,
			Credits:   credits,
		})
	}

	records := make([]results.StudentRecord, 0, len(order))
	for _, studentID := range order {
		subjects := perStudent[studentID]
		records = append(records, results.StudentRecord{
			StudentID:   studentID,
			Semester:    meta.Semester,
			Program:     meta.Program,
			Institution: meta.Institution,
			Subjects:    subjects,
			SGPA:        results.ComputeSGPA(subjects),
			Format:      results.FormatTabular,
		})
	}
	return records, skipped
}

// isTabularCandidate requires the seven-column skeleton: a leading serial, at
// least one title token, and a numeric credits column.
func isTabularCandidate(tokens []string) bool {
	if len(tokens) < 7 {
		return false
	}
	if !isSerial(tokens[0]) {
		return false
	}
	_, err := strconv.ParseFloat(tokens[len(tokens)-1], 64)
	return err == nil
}

// parseInternals reads the internal-marks column; an "ABSENT" token is
// recorded as zero marks.
func parseInternals(token string) (int, bool) {
	if strings.EqualFold(token, "ABSENT") {
		return 0, true
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
