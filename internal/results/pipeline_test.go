// SPDX-License-Identifier: Apache-2.0

package results_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resultsproj/results-mcp/internal/results"
	"github.com/resultsproj/results-mcp/internal/results/extractors"
)

func newTestPipeline(t *testing.T) *results.Pipeline {
	t.Helper()
	policy := results.DefaultPolicy()
	return results.NewPipeline(policy, nil, extractors.All(policy)...)
}

func pagesOf(texts ...string) []results.RawPage {
	pages := make([]results.RawPage, len(texts))
	for i, text := range texts {
		pages[i] = results.RawPage{Index: i, Text: text}
	}
	return pages
}

func TestPipeline_Parse_Grouped(t *testing.T) {
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(groupedDoc), results.Options{})
	require.NoError(t, err)

	assert.Equal(t, results.FormatGrouped, result.Format)
	assert.Equal(t, "Year 1 Semester 2", result.Meta.Semester)
	assert.Contains(t, result.Meta.Institution, "UNIVERSITY")
	require.Len(t, result.Records, 2)
	assert.Zero(t, result.Skipped)

	first := result.Records[0]
	assert.Equal(t, "20B1A001", first.StudentID)
	require.Len(t, first.Subjects, 2)
	assert.Equal(t, "CS101", first.Subjects[0].Code)
	assert.Equal(t, "S", first.Subjects[0].Grade)
	assert.Equal(t, "MA101", first.Subjects[1].Code)
	assert.Equal(t, "A", first.Subjects[1].Grade)
	assert.Equal(t, 9.50, first.SGPA, "source SGPA preserved")
}

func TestPipeline_Parse_Tabular(t *testing.T) {
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(tabularDoc), results.Options{})
	require.NoError(t, err)

	assert.Equal(t, results.FormatTabular, result.Format)
	require.Len(t, result.Records, 2, "students in first-seen order")

	first := result.Records[0]
	assert.Equal(t, "20B1A001", first.StudentID)
	require.Len(t, first.Subjects, 2)
	assert.Equal(t, 80, first.Subjects[0].Internals)
	assert.InDelta(t, 9.43, first.SGPA, 1e-9, "SGPA computed, absent from source")

	second := result.Records[1]
	assert.Equal(t, "20B1A002", second.StudentID)
	assert.Equal(t, 0.0, second.SGPA, "only subject failed")
}

func TestPipeline_Parse_Matrix(t *testing.T) {
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(matrixDoc), results.Options{})
	require.NoError(t, err)

	assert.Equal(t, results.FormatMatrix, result.Format)
	require.Len(t, result.Records, 3)
	assert.Zero(t, result.Skipped)

	for _, record := range result.Records {
		assert.Len(t, record.Subjects, 3, "row width matches catalog width")
	}
	assert.Equal(t, "24B81A0501", result.Records[0].StudentID)
	assert.Equal(t, 9.10, result.Records[0].SGPA, "source SGPA preferred")
	assert.Equal(t, "Subject 24BS1003", result.Records[0].Subjects[0].Title)
	assert.Equal(t, "24B81A0503", result.Records[2].StudentID, "serial-less row accepted")
}

func TestPipeline_Parse_Deterministic(t *testing.T) {
	pipeline := newTestPipeline(t)
	for _, doc := range []string{groupedDoc, tabularDoc, matrixDoc} {
		a, err := pipeline.Parse(context.Background(), pagesOf(doc), results.Options{})
		require.NoError(t, err)
		b, err := pipeline.Parse(context.Background(), pagesOf(doc), results.Options{})
		require.NoError(t, err)

		aJSON, err := json.Marshal(a.Records)
		require.NoError(t, err)
		bJSON, err := json.Marshal(b.Records)
		require.NoError(t, err)
		assert.Equal(t, aJSON, bJSON, "identical input must produce byte-identical records")
	}
}

func TestPipeline_Parse_SkipAccounting(t *testing.T) {
	doc := `1) CS101-Programming
2) MA101-Calculus

20B1A001 S A 9.50
12X@@ S A 9.50
`
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(doc), results.Options{})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "20B1A001", result.Records[0].StudentID)
	assert.Equal(t, 1, result.Skipped, "invalid roll number is skipped, not coerced")
}

func TestPipeline_Parse_EmptyCatalog(t *testing.T) {
	// Grouped rows but no catalog-shaped text at all: rows cannot match the
	// zero-width grammar, so the result is empty with every row counted.
	doc := "20B1A001 S A 9.50\n20B1A002 B F 8.00\n"
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(doc), results.Options{})
	require.NoError(t, err)

	assert.Equal(t, results.FormatGrouped, result.Format)
	assert.Empty(t, result.Records)
	assert.Equal(t, 2, result.Skipped)
}

func TestPipeline_Parse_EmptyPagesDropped(t *testing.T) {
	pages := pagesOf("", groupedDoc, "   \n")
	result, err := newTestPipeline(t).Parse(context.Background(), pages, results.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Records, 2, "empty pages are skipped, not fatal")
}

func TestPipeline_Parse_NoPages(t *testing.T) {
	_, err := newTestPipeline(t).Parse(context.Background(), nil, results.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pages")
}

func TestPipeline_Parse_Overrides(t *testing.T) {
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(groupedDoc), results.Options{
		Semester:    "Year 3 Semester 1",
		Institution: "Some Other College",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Records)
	assert.Equal(t, "Year 3 Semester 1", result.Records[0].Semester)
	assert.Equal(t, "Some Other College", result.Records[0].Institution)
	assert.Equal(t, "B.Tech", result.Records[0].Program, "program still detected")
}

func TestPipeline_Result_Batches(t *testing.T) {
	result, err := newTestPipeline(t).Parse(context.Background(), pagesOf(matrixDoc), results.Options{BatchSize: 2})
	require.NoError(t, err)
	require.Len(t, result.Records, 3)

	batches := result.Batches()
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 1)

	var rebuilt []results.StudentRecord
	for _, batch := range batches {
		rebuilt = append(rebuilt, batch...)
	}
	assert.Equal(t, result.Records, rebuilt)
}
