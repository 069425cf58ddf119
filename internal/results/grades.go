// SPDX-License-Identifier: Apache-2.0

package results

import (
	"math"
	"strings"
)

// gradePointTable is the institutional grade-point mapping. Fail-class
// symbols map to 0 and are excluded from the SGPA numerator and denominator.
var gradePointTable = map[string]int{
	"S":      10,
	"A":      9,
	"B":      8,
	"C":      7,
	"D":      6,
	"E":      5,
	"F":      0,
	"AB":     0,
	"ABSENT": 0,
	"MP":     0,
	"-":      0,
}

// failClass holds the symbols that contribute to neither side of the SGPA
// weighted average.
var failClass = map[string]bool{
	"F":      true,
	"AB":     true,
	"ABSENT": true,
	"MP":     true,
	"-":      true,
}

// GradePoint returns the grade point for a symbol. It is total: unknown
// symbols map to 0, never an error.
func GradePoint(symbol string) int {
	return gradePointTable[strings.ToUpper(strings.TrimSpace(symbol))]
}

// IsFailGrade reports whether a symbol is fail-class (F, AB, ABSENT, MP, "-").
func IsFailGrade(symbol string) bool {
	return failClass[strings.ToUpper(strings.TrimSpace(symbol))]
}

// IsGradeSymbol reports whether a token is a member of the closed grade set.
func IsGradeSymbol(token string) bool {
	_, ok := gradePointTable[strings.ToUpper(token)]
	return ok
}

// ComputeSGPA returns the credit-weighted mean of grade points over passing
// subjects, rounded half-up to two decimals. A zero denominator (every
// subject failed or absent, or no subjects at all) yields 0.00.
func ComputeSGPA(subjects []SubjectResult) float64 {
	var points, credits float64
	for _, s := range subjects {
		if IsFailGrade(s.Grade) {
			continue
		}
		points += float64(GradePoint(s.Grade)) * s.Credits
		credits += s.Credits
	}
	if credits == 0 {
		return 0.0
	}
	return round2(points / credits)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
