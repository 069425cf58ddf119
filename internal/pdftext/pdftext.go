// SPDX-License-Identifier: Apache-2.0

// Package pdftext is the input-boundary collaborator of the extraction
// engine: it turns a PDF's embedded text layer into ordered per-page text.
// Only the text layer is read; scanned (image-only) PDFs need OCR and are
// not handled here.
package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/resultsproj/results-mcp/internal/results"
)

// ExtractPages reads the text layer of every page, in page order. A page
// whose text cannot be read contributes an empty page rather than failing
// the whole document; the engine drops empty pages.
func ExtractPages(path string) ([]results.RawPage, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]results.RawPage, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, results.RawPage{Index: i - 1})
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			pages = append(pages, results.RawPage{Index: i - 1})
			continue
		}
		pages = append(pages, results.RawPage{Index: i - 1, Text: text})
	}
	return pages, nil
}
