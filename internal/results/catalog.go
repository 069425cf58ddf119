// SPDX-License-Identifier: Apache-2.0

package results

import (
	"fmt"
	"regexp"
	"strings"
)

// catalogEntryRe matches one numbered catalog declaration, "1) CODE-Title".
// Declarations are line-scoped in every observed document.
var catalogEntryRe = regexp.MustCompile(`\d+\)\s*([A-Z0-9]{3,})\s*-\s*([^\n]+)`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CatalogBuilder reconstructs the ordered (code, title) catalog that Grouped
// and Matrix grade rows are zipped against. The catalog length fixes the
// expected grade-run width of those formats' row grammars.
type CatalogBuilder struct {
	policy Policy
	codeRe *regexp.Regexp
	// headerRe matches a contiguous run of code-shaped tokens immediately
	// preceding the literal "SGPA" in a Matrix column header.
	headerRe *regexp.Regexp
}

// NewCatalogBuilder compiles the policy's subject-code shape into the builder.
func NewCatalogBuilder(policy Policy) *CatalogBuilder {
	code := policy.SubjectCodePattern
	return &CatalogBuilder{
		policy:   policy,
		codeRe:   regexp.MustCompile(code),
		headerRe: regexp.MustCompile(`(?i)((?:` + code + `)(?:\s+(?:` + code + `)){2,})\s+SGPA`),
	}
}

// Build scans the document for a numbered catalog declaration, preserving
// first-seen order and de-duplicating by code. When no declaration exists it
// falls back to the Matrix header run, with placeholder titles. An empty
// catalog is a valid terminal state: the caller proceeds with zero-subject
// records.
func (b *CatalogBuilder) Build(text string) []SubjectDescriptor {
	if catalog := b.fromDeclarations(text); len(catalog) > 0 {
		return catalog
	}
	return b.fromMatrixHeader(text)
}

func (b *CatalogBuilder) fromDeclarations(text string) []SubjectDescriptor {
	matches := catalogEntryRe.FindAllStringSubmatch(text, -1)
	var catalog []SubjectDescriptor
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		code := strings.TrimSpace(m[1])
		if seen[code] {
			continue
		}
		seen[code] = true
		title := normalizeTitle(m[2])
		catalog = append(catalog, SubjectDescriptor{
			Code:    code,
			Title:   title,
			Credits: b.policy.CreditsFor(code, title),
		})
	}
	return catalog
}

func (b *CatalogBuilder) fromMatrixHeader(text string) []SubjectDescriptor {
	m := b.headerRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	codes := b.codeRe.FindAllString(m[1], -1)
	var catalog []SubjectDescriptor
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		catalog = append(catalog, SubjectDescriptor{
			Code:    code,
			Title:   fmt.Sprintf("Subject %s", code),
			Credits: b.policy.CreditsFor(code, ""),
		})
	}
	return catalog
}

// normalizeTitle collapses whitespace runs left behind by column extraction.
func normalizeTitle(title string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(title), " ")
}
