// SPDX-License-Identifier: Apache-2.0

package results

import "regexp"

// Each format owns a disjoint set of structural signatures. A signature is a
// fingerprint of one layout: a column header, a catalog declaration, a
// fixed-width grade row. Classification counts matching signatures per format
// and the highest count wins; ties resolve through the policy priority order.

var tabularSignatures = []*regexp.Regexp{
	// Explicit seven-column header.
	regexp.MustCompile(`(?i)Sno\s+Htno\s+Subcode\s+Subname\s+Internals\s+Grade\s+Credits`),
	// One subject per line: serial, roll, code, title, internals, grade, credits.
	regexp.MustCompile(`(?im)^\s*\d+\s+[A-Z0-9]{8,12}\s+[A-Z0-9]{4,10}\s+.+?\s+\d+\s+(?:[A-FS]|AB(?:SENT)?|MP)\s+[\d.]+\s*$`),
	// Degraded header where column spacing collapsed.
	regexp.MustCompile(`(?i)Htno.*?Subcode.*?Grade.*?Credits`),
}

var groupedSignatures = []*regexp.Regexp{
	// Fixed-width grade row trailing an SGPA.
	regexp.MustCompile(`(?m)^[A-Z0-9]{8,12}\s+(?:(?:[A-FS]|AB(?:SENT)?|MP|-)\s+)+\d+\.\d{2}\s*$`),
	// Numbered subject catalog: "1) CODE-Title".
	regexp.MustCompile(`\d+\)\s*[A-Z0-9]{3,}\s*-\s*\S+`),
}

var matrixSignatures = []*regexp.Regexp{
	// Programme banner unique to the matrix layout.
	regexp.MustCompile(`(?i)Programme\s*:\s*[IVX]+\s*B\.?\s?Tech\.?\s*\(\s*[IVX]+\s*Semester\s*\)`),
	// Header naming students then a run of subject-code columns before SGPA.
	regexp.MustCompile(`(?is)S\.?\s?No\.?\s+H\.?\s?T\.?\s?No\.?.*?(?:[A-Z0-9]{6,10}\s+){3,}.*?SGPA`),
	// Wide run of code-shaped tokens immediately preceding SGPA.
	regexp.MustCompile(`(?is)(?:\d{2}[A-Z]{2}\d{4}\s+){3,}.*?SGPA`),
	// Serial-prefixed fixed-width grade row.
	regexp.MustCompile(`(?m)^\s*\d+\s+[A-Z0-9]{8,12}\s+(?:(?:[A-FS]|AB(?:SENT)?|MP|-)\s+){3,}\d+\.\d{2}\s*$`),
}

var formatSignatures = map[Format][]*regexp.Regexp{
	FormatGrouped: groupedSignatures,
	FormatTabular: tabularSignatures,
	FormatMatrix:  matrixSignatures,
}

// Classification is the outcome of scoring a document against all three
// signature sets.
type Classification struct {
	Format Format
	// Scores holds the per-format signature match counts.
	Scores map[Format]int
	// Ambiguous reports that the winning score was shared by more than one
	// format and the priority order decided.
	Ambiguous bool
}

// Classify scores the document text against every format's signature set and
// selects the winner. Ties resolve in priority order; when no signature
// matches at all the result is Grouped, the historically first-supported
// layout.
func Classify(text string, priority []Format) Classification {
	scores := make(map[Format]int, len(formatSignatures))
	for format, signatures := range formatSignatures {
		n := 0
		for _, sig := range signatures {
			if sig.MatchString(text) {
				n++
			}
		}
		scores[format] = n
	}

	best := 0
	for _, n := range scores {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return Classification{Format: FormatGrouped, Scores: scores}
	}

	winners := 0
	for _, n := range scores {
		if n == best {
			winners++
		}
	}
	for _, format := range priority {
		if scores[format] == best {
			return Classification{Format: format, Scores: scores, Ambiguous: winners > 1}
		}
	}
	// Priority list did not name the winner; fall back to the hard default.
	return Classification{Format: FormatGrouped, Scores: scores, Ambiguous: winners > 1}
}
