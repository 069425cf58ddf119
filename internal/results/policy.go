// SPDX-License-Identifier: Apache-2.0

package results

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

// Policy collects the tunables the engine inherits from observed source
// behavior rather than from any document schema: the classifier tie-break
// order, the institution's roll-number grammar, the lexical shape of subject
// codes, the credit heuristics, and the default batch size. All fields have
// working defaults; a YAML file overrides them per deployment.
type Policy struct {
	// Priority is the classifier tie-break order, highest priority first.
	Priority []Format `yaml:"priority"`
	// RollPattern is the anchored roll-number grammar. Tokens that fail it
	// are rejected, never coerced.
	RollPattern string `yaml:"roll_pattern"`
	// SubjectCodePattern is the lexical shape of a subject code as it
	// appears in a Matrix column header.
	SubjectCodePattern string `yaml:"subject_code_pattern"`

	DefaultCredits float64 `yaml:"default_credits"`
	LabCredits     float64 `yaml:"lab_credits"`
	ProjectCredits float64 `yaml:"project_credits"`
	SeminarCredits float64 `yaml:"seminar_credits"`

	BatchSize int `yaml:"batch_size"`
}

// DefaultPolicy returns the policy matching the newest observed source
// variant: Matrix-first tie-breaking and the two-digit-year roll grammar.
func DefaultPolicy() Policy {
	return Policy{
		Priority:           []Format{FormatMatrix, FormatTabular, FormatGrouped},
		RollPattern:        `^[0-9]{2}[A-Z][A-Z0-9]{5,9}$`,
		SubjectCodePattern: `\d{2}[A-Z]{2}\d{4}`,
		DefaultCredits:     3.0,
		LabCredits:         1.5,
		ProjectCredits:     2.0,
		SeminarCredits:     1.0,
		BatchSize:          50,
	}
}

// LoadPolicy unmarshals a YAML policy document over the defaults, so a file
// only needs to name the fields it changes.
func LoadPolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to unmarshal policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks the policy's patterns compile and its priority list names
// only known formats.
func (p Policy) Validate() error {
	if len(p.Priority) == 0 {
		return fmt.Errorf("policy priority list is empty")
	}
	for _, f := range p.Priority {
		switch f {
		case FormatGrouped, FormatTabular, FormatMatrix:
		default:
			return fmt.Errorf("unknown format %q in policy priority list", f)
		}
	}
	if _, err := regexp.Compile(p.RollPattern); err != nil {
		return fmt.Errorf("invalid roll pattern: %w", err)
	}
	if _, err := regexp.Compile(p.SubjectCodePattern); err != nil {
		return fmt.Errorf("invalid subject code pattern: %w", err)
	}
	if p.BatchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, got %d", p.BatchSize)
	}
	return nil
}

// CreditsFor applies the naming heuristics used when a document carries no
// explicit credit column. Title keywords win over the code-suffix rule so a
// placeholder title never masks a real lab.
func (p Policy) CreditsFor(code, title string) float64 {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "lab"):
		return p.LabCredits
	case strings.Contains(lower, "project"):
		return p.ProjectCredits
	case strings.Contains(lower, "seminar"):
		return p.SeminarCredits
	}
	if strings.HasSuffix(code, "1") || strings.HasSuffix(code, "8") {
		return p.LabCredits
	}
	return p.DefaultCredits
}
