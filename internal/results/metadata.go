// SPDX-License-Identifier: Apache-2.0

package results

import (
	"fmt"
	"regexp"
	"strings"
)

// Documents carry their semester, programme, and institution only as free
// header text. Recovery is an ordered fallback chain: the first matching
// pattern wins, and a documented default stands in when nothing matches.

const (
	// DefaultSemester is the label used when no semester pattern matches.
	DefaultSemester = "Unknown Semester"
	// DefaultProgram is the label used when no programme pattern matches.
	DefaultProgram = "Unknown Program"
	// DefaultInstitution is the label used when no institution pattern matches.
	DefaultInstitution = "Autonomous University"
)

// semesterSearchLimit bounds the header scan; semester banners always sit on
// the first page.
const semesterSearchLimit = 3000

// institutionSearchLimit bounds the institution scan to the letterhead.
const institutionSearchLimit = 1000

type semesterPattern struct {
	re *regexp.Regexp
	// yearAndSemester marks patterns capturing both a year and a semester
	// group; the rest capture a single semester group.
	yearAndSemester bool
}

// semesterPatterns is evaluated in order, most specific first.
var semesterPatterns = []semesterPattern{
	{re: regexp.MustCompile(`(?i)Programme\s*:\s*([IVX]+)\s*B\.?\s?Tech\.?\s*\(\s*([IVX]+)\s*Semester\s*\)`), yearAndSemester: true},
	{re: regexp.MustCompile(`(?i)Results of.*?([IVX]+)\s*B\.?\s?Tech\s*([IVX]+)\s*Semester`), yearAndSemester: true},
	{re: regexp.MustCompile(`(?i)Results of.*?(\d+)\s*B\.?\s?Tech\s*(\d+)\s*Semester`), yearAndSemester: true},
	{re: regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*(?:Semester|SEM)`), yearAndSemester: true},
	{re: regexp.MustCompile(`(?i)(\d+)\s*(?:st|nd|rd|th)?\s*(?:Semester|SEM)`)},
	{re: regexp.MustCompile(`(?i)B\.?\s?Tech.*?(\d+)\s*(?:st|nd|rd|th)?\s*(?:Semester|SEM)`)},
}

var institutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(JAWAHARLAL NEHRU TECHNOLOGICAL UNIVERSITY[^\n]*)`),
	regexp.MustCompile(`(?i)([^\n]*UNIVERSITY[^\n]*)`),
	regexp.MustCompile(`(?i)(JNTU[^\n]*)`),
}

var programPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\bB\.?\s?Tech\b`), "B.Tech"},
	{regexp.MustCompile(`(?i)\bM\.?\s?Tech\b`), "M.Tech"},
	{regexp.MustCompile(`(?i)\bMBA\b`), "MBA"},
	{regexp.MustCompile(`(?i)\bMCA\b`), "MCA"},
}

var romanToArabic = map[string]string{
	"I": "1", "II": "2", "III": "3", "IV": "4",
	"V": "5", "VI": "6", "VII": "7", "VIII": "8",
}

// ExtractMeta recovers the document labels from header text. Non-empty
// override fields win over detection.
func ExtractMeta(text string, overrides DocumentMeta) DocumentMeta {
	meta := DocumentMeta{
		Semester:    overrides.Semester,
		Program:     overrides.Program,
		Institution: overrides.Institution,
	}
	if meta.Semester == "" {
		meta.Semester = extractSemester(text)
	}
	if meta.Program == "" {
		meta.Program = extractProgram(text)
	}
	if meta.Institution == "" {
		meta.Institution = extractInstitution(text)
	}
	return meta
}

func extractSemester(text string) string {
	header := head(text, semesterSearchLimit)
	for _, p := range semesterPatterns {
		m := p.re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		if p.yearAndSemester {
			return fmt.Sprintf("Year %s Semester %s", arabic(m[1]), arabic(m[2]))
		}
		return fmt.Sprintf("Semester %s", arabic(m[1]))
	}
	return DefaultSemester
}

func extractProgram(text string) string {
	header := head(text, semesterSearchLimit)
	for _, p := range programPatterns {
		if p.re.MatchString(header) {
			return p.label
		}
	}
	return DefaultProgram
}

func extractInstitution(text string) string {
	header := head(text, institutionSearchLimit)
	for _, re := range institutionPatterns {
		if m := re.FindStringSubmatch(header); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return DefaultInstitution
}

func arabic(numeral string) string {
	if n, ok := romanToArabic[strings.ToUpper(numeral)]; ok {
		return n
	}
	return numeral
}

func head(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
