// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resultsproj/results-mcp/internal/pdftext"
	"github.com/resultsproj/results-mcp/internal/results"
	"github.com/resultsproj/results-mcp/internal/results/extractors"
	"github.com/resultsproj/results-mcp/internal/tool"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "results-mcp",
		Short:         "Academic result document extraction engine",
		Long:          "results-mcp detects the layout of academic result documents (grouped, tabular, or matrix), reconstructs their subject catalog, and extracts normalized per-student grade records.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newParseCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction engine as an MCP server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(&mcp.Implementation{Name: "results-mcp", Version: version}, nil)
			mcp.AddTool(server, tool.MetadataParseResultDocument, tool.ParseResultDocument)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	var (
		policyFile  string
		semester    string
		program     string
		institution string
		batchSize   int
	)
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a result document (PDF or extracted text) and print JSON records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			policy, err := loadPolicy(policyFile)
			if err != nil {
				return err
			}
			pages, err := loadPages(args[0])
			if err != nil {
				return err
			}

			pipeline := results.NewPipeline(policy, logger, extractors.All(policy)...)
			result, err := pipeline.Parse(cmd.Context(), pages, results.Options{
				Semester:    semester,
				Program:     program,
				Institution: institution,
				BatchSize:   batchSize,
			})
			if err != nil {
				return err
			}
			if len(result.Records) == 0 {
				logger.Warn("no records extracted", zap.Int("skipped", result.Skipped))
			}
			return printResult(result)
		},
	}
	cmd.Flags().StringVar(&policyFile, "policy", "", "path to a YAML policy file overriding the defaults")
	cmd.Flags().StringVar(&semester, "semester", "", "semester label override")
	cmd.Flags().StringVar(&program, "program", "", "program label override")
	cmd.Flags().StringVar(&institution, "institution", "", "institution label override")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "batch size (default: engine policy)")
	return cmd
}

func loadPolicy(path string) (results.Policy, error) {
	if path == "" {
		return results.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return results.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return results.LoadPolicy(data)
}

// loadPages extracts per-page text from a PDF, or treats any other file as a
// single page of already-extracted text.
func loadPages(path string) ([]results.RawPage, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdftext.ExtractPages(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return []results.RawPage{{Index: 0, Text: string(data)}}, nil
}

func printResult(result results.Result) error {
	out := struct {
		Format      string                  `json:"format"`
		Semester    string                  `json:"semester"`
		Program     string                  `json:"program"`
		Institution string                  `json:"university"`
		Skipped     int                     `json:"skipped"`
		Records     []results.StudentRecord `json:"records"`
	}{
		Format:      string(result.Format),
		Semester:    result.Meta.Semester,
		Program:     result.Meta.Program,
		Institution: result.Meta.Institution,
		Skipped:     result.Skipped,
		Records:     result.Records,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
