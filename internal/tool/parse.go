// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/resultsproj/results-mcp/internal/results"
	"github.com/resultsproj/results-mcp/internal/results/extractors"
)

// MetadataParseResultDocument describes the parse_result_document tool.
var MetadataParseResultDocument = &mcp.Tool{
	Name: "parse_result_document",
	Description: "Parse the extracted text of an academic result document and return normalized " +
		"per-student grade records. The document layout (grouped, tabular, or matrix) is detected " +
		"automatically from structural signatures; no schema is required. Malformed rows are " +
		"skipped and counted, never fatal: an empty record list with a positive skip count means " +
		"the document was recognized but its rows were degraded.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"pages"},
		"properties": map[string]interface{}{
			"pages": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Per-page extracted text of the source document, in page order.",
			},
			"semester": map[string]interface{}{
				"type":        "string",
				"description": "Optional semester label override; detected from the header when omitted.",
			},
			"program": map[string]interface{}{
				"type":        "string",
				"description": "Optional program label override; detected from the header when omitted.",
			},
			"institution": map[string]interface{}{
				"type":        "string",
				"description": "Optional institution label override; detected from the header when omitted.",
			},
			"batch_size": map[string]interface{}{
				"type":        "integer",
				"description": "Optional batch size for the batches field; defaults to the engine policy (50).",
			},
		},
	},
}

// InputParseResultDocument is the input for the ParseResultDocument tool.
type InputParseResultDocument struct {
	Pages       []string `json:"pages"`
	Semester    string   `json:"semester"`
	Program     string   `json:"program"`
	Institution string   `json:"institution"`
	BatchSize   int      `json:"batch_size"`
}

// OutputParseResultDocument is the output for the ParseResultDocument tool.
type OutputParseResultDocument struct {
	// Records is the full ordered record list.
	Records []results.StudentRecord `json:"records"`
	// Batches is the same sequence chunked for incremental consumption;
	// concatenating it reproduces Records exactly.
	Batches [][]results.StudentRecord `json:"batches"`
	// Format is the detected layout: grouped, tabular, or matrix.
	Format string `json:"format"`
	// Skipped counts candidate rows rejected by the row grammar.
	Skipped int `json:"skipped"`
	// Semester, Program, and Institution are the labels stamped onto the
	// records.
	Semester    string `json:"semester"`
	Program     string `json:"program"`
	Institution string `json:"institution"`
}

// defaultPipeline builds a Pipeline with all three format strategies under
// the default policy.
func defaultPipeline() *results.Pipeline {
	policy := results.DefaultPolicy()
	return results.NewPipeline(policy, nil, extractors.All(policy)...)
}

// ParseResultDocument runs the extraction pipeline over the provided page
// texts and returns the normalized records with their skip accounting.
func ParseResultDocument(ctx context.Context, _ *mcp.CallToolRequest, input InputParseResultDocument) (*mcp.CallToolResult, OutputParseResultDocument, error) {
	if len(input.Pages) == 0 {
		return nil, OutputParseResultDocument{}, fmt.Errorf("pages is required")
	}

	pages := make([]results.RawPage, len(input.Pages))
	for i, text := range input.Pages {
		pages[i] = results.RawPage{Index: i, Text: text}
	}

	result, err := defaultPipeline().Parse(ctx, pages, results.Options{
		Semester:    input.Semester,
		Program:     input.Program,
		Institution: input.Institution,
		BatchSize:   input.BatchSize,
	})
	if err != nil {
		return nil, OutputParseResultDocument{}, err
	}

	return nil, OutputParseResultDocument{
		Records:     result.Records,
		Batches:     result.Batches(),
		Format:      string(result.Format),
		Skipped:     result.Skipped,
		Semester:    result.Meta.Semester,
		Program:     result.Meta.Program,
		Institution: result.Meta.Institution,
	}, nil
}
