// SPDX-License-Identifier: Apache-2.0

package results

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Pipeline composes the engine: classify the document, reconstruct the
// subject catalog when the detected format needs one, run the matching
// extractor, and report the result with its skip accounting. A Pipeline holds
// no per-document state; independent documents may be parsed concurrently on
// one instance.
type Pipeline struct {
	policy     Policy
	log        *zap.Logger
	extractors map[Format]RecordExtractor
}

// NewPipeline creates a Pipeline with the provided extraction strategies. A
// nil logger disables logging.
func NewPipeline(policy Policy, log *zap.Logger, extractors ...RecordExtractor) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	byFormat := make(map[Format]RecordExtractor, len(extractors))
	for _, e := range extractors {
		byFormat[e.Format()] = e
	}
	return &Pipeline{policy: policy, log: log, extractors: byFormat}
}

// Options are the caller-supplied overrides for one parse invocation.
// Non-empty labels win over header detection; a BatchSize below 1 falls back
// to the policy default.
type Options struct {
	Semester    string
	Program     string
	Institution string
	BatchSize   int
}

// Result is the outcome of one parse invocation. Skipped is the aggregate
// count of candidate rows rejected by the row grammar; it is the only
// data-quality signal surfaced to the caller. An empty Records with a zero
// Skipped means no row resembled the detected format at all.
type Result struct {
	Records []StudentRecord
	Skipped int
	Format  Format
	Scores  map[Format]int
	Meta    DocumentMeta

	batchSize int
}

// Batches chunks the result's records using the batch size resolved at parse
// time (the caller's override, or the policy default); see Batches.
func (r Result) Batches() [][]StudentRecord {
	return Batches(r.Records, r.batchSize)
}

// Parse runs the full pipeline over the document's pages. Data-quality
// anomalies degrade the result instead of failing it: empty pages are
// dropped, a missing catalog yields zero-subject records, and malformed rows
// are absorbed into the skip counter. The only errors are contract
// violations (no pages supplied, no extractor registered for the detected
// format).
func (p *Pipeline) Parse(ctx context.Context, pages []RawPage, opts Options) (Result, error) {
	if len(pages) == 0 {
		return Result{}, fmt.Errorf("no pages supplied")
	}

	text := joinPages(pages)
	classification := Classify(text, p.policy.Priority)
	if classification.Ambiguous {
		p.log.Warn("format scores tied, priority order decided",
			zap.String("format", string(classification.Format)))
	}
	p.log.Info("classified document",
		zap.String("format", string(classification.Format)),
		zap.Int("grouped_score", classification.Scores[FormatGrouped]),
		zap.Int("tabular_score", classification.Scores[FormatTabular]),
		zap.Int("matrix_score", classification.Scores[FormatMatrix]))

	extractor, ok := p.extractors[classification.Format]
	if !ok {
		return Result{}, fmt.Errorf("no extractor registered for format %q", classification.Format)
	}

	meta := ExtractMeta(text, DocumentMeta{
		Semester:    opts.Semester,
		Program:     opts.Program,
		Institution: opts.Institution,
	})

	var catalog []SubjectDescriptor
	if extractor.NeedsCatalog() {
		catalog = NewCatalogBuilder(p.policy).Build(text)
		if len(catalog) == 0 {
			p.log.Warn("no subject catalog found, proceeding with zero-subject records")
		}
	}

	records, skipped := extractor.Extract(ctx, text, catalog, meta)
	p.log.Info("extraction complete",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
		zap.Int("catalog_size", len(catalog)))

	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = p.policy.BatchSize
	}

	return Result{
		Records:   records,
		Skipped:   skipped,
		Format:    classification.Format,
		Scores:    classification.Scores,
		Meta:      meta,
		batchSize: batchSize,
	}, nil
}

// joinPages concatenates non-empty page texts in document order. A page that
// contributed no text is dropped, not fatal.
func joinPages(pages []RawPage) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		parts = append(parts, page.Text)
	}
	return strings.Join(parts, "\n")
}
