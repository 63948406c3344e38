package universityprogram

import (
	"strings"

	"orientation-service/internal/apperr"
)

// Section is a baccalaureate exam track.
type Section string

const (
	SectionScience    Section = "science"
	SectionMaths      Section = "maths"
	SectionLiterature Section = "literature"
	SectionEconomics  Section = "economics"
	SectionInfo       Section = "info"
)

var ErrInvalidSection = apperr.Validation("Invalid baccalaureate section")

const (
	MessageEligible    = "The student is eligible for this program at the university."
	MessageNotEligible = "The student does not meet the minimum score requirement."
)

// Sections lists every valid section in a stable order.
func Sections() []Section {
	return []Section{SectionScience, SectionMaths, SectionLiterature, SectionEconomics, SectionInfo}
}

// ParseSection accepts exactly the five section names, ignoring surrounding
// whitespace.
func ParseSection(raw string) (Section, error) {
	s := Section(strings.TrimSpace(raw))
	switch s {
	case SectionScience, SectionMaths, SectionLiterature, SectionEconomics, SectionInfo:
		return s, nil
	}
	return "", ErrInvalidSection
}

// Column is the university_programs column holding the minimum for s.
func (s Section) Column() string {
	return "min_score_" + string(s)
}

// For returns the minimum score for section, nil when there is none.
func (t Thresholds) For(section Section) *float64 {
	switch section {
	case SectionScience:
		return t.MinScoreScience
	case SectionMaths:
		return t.MinScoreMaths
	case SectionLiterature:
		return t.MinScoreLiterature
	case SectionEconomics:
		return t.MinScoreEconomics
	case SectionInfo:
		return t.MinScoreInfo
	}
	return nil
}

// Admits reports whether score clears the section minimum. A missing
// minimum admits every score.
func (t Thresholds) Admits(section Section, score float64) bool {
	minimum := t.For(section)
	return minimum == nil || score >= *minimum
}
