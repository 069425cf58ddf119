// SPDX-License-Identifier: Apache-2.0

package results_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resultsproj/results-mcp/internal/results"
)

const groupedDoc = `JAWAHARLAL NEHRU TECHNOLOGICAL UNIVERSITY KAKINADA
Results of I B.Tech II Semester Examinations

1) CS101-Programming
2) MA101-Calculus

20B1A001 S A 9.50
20B1A002 B F 8.00
`

const tabularDoc = `JAWAHARLAL NEHRU TECHNOLOGICAL UNIVERSITY KAKINADA
Results of I B.Tech II Semester Examinations
Sno Htno Subcode Subname Internals Grade Credits
1 20B1A001 CS101 Programming 80 S 3
1 20B1A001 MA101 Calculus 75 A 4
2 20B1A002 CS101 Programming 40 F 3
`

const matrixDoc = `SRES COLLEGE OF ENGINEERING (AUTONOMOUS)
Programme : I B.Tech ( II Semester )
S.No H.T.No 24BS1003 24BS1107 24ES1102 SGPA
1 24B81A0501 S A B 9.10
2 24B81A0502 F AB C 3.50
24B81A0503 S S S 10.00
`

func TestClassify(t *testing.T) {
	priority := results.DefaultPolicy().Priority

	tests := []struct {
		name string
		text string
		want results.Format
	}{
		{"grouped catalog and fixed-width rows", groupedDoc, results.FormatGrouped},
		{"tabular seven-column layout", tabularDoc, results.FormatTabular},
		{"matrix header and serial rows", matrixDoc, results.FormatMatrix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := results.Classify(tt.text, priority)
			assert.Equal(t, tt.want, c.Format)
			assert.False(t, c.Ambiguous)
			assert.Greater(t, c.Scores[tt.want], 0)
		})
	}
}

func TestClassify_FallbackWhenNoSignatureMatches(t *testing.T) {
	c := results.Classify("nothing resembling a result document", results.DefaultPolicy().Priority)
	assert.Equal(t, results.FormatGrouped, c.Format)
	assert.False(t, c.Ambiguous)
	for _, score := range c.Scores {
		assert.Zero(t, score)
	}
}

func TestClassify_TieBreakFollowsPriority(t *testing.T) {
	// One grouped signature (numbered catalog) and one matrix signature
	// (programme banner) match, nothing else.
	text := "Programme : I B.Tech ( II Semester )\n1) ABC123-Intro\n"

	c := results.Classify(text, []results.Format{results.FormatMatrix, results.FormatTabular, results.FormatGrouped})
	assert.Equal(t, results.FormatMatrix, c.Format)
	assert.True(t, c.Ambiguous)
	assert.Equal(t, c.Scores[results.FormatMatrix], c.Scores[results.FormatGrouped])

	// Reordering the policy flips the winner; the scores are unchanged.
	c = results.Classify(text, []results.Format{results.FormatGrouped, results.FormatTabular, results.FormatMatrix})
	assert.Equal(t, results.FormatGrouped, c.Format)
	assert.True(t, c.Ambiguous)
}
