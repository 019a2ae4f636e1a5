package sici

import (
	"regexp"
	"strings"
)

// issnPattern is the ISSN shape: four digits, hyphen, three digits and a
// check character (digit or x/X).
var issnPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}[0-9xX]$`)

// ItemSegment identifies the serial item: the ISSN, the chronology (cover
// date) and the enumeration, either raw or decomposed into volume, issue and
// an optional supplement/index marker. Every field is optional and presence
// is tracked independently.
type ItemSegment struct {
	owner *Sici

	issn        optVal
	chronology  optVal
	enumeration optVal
	volume      optVal
	issue       optVal
	supplOrIdx  optVal

	tracker *Tracker
}

func newItemSegment(owner *Sici) *ItemSegment {
	return &ItemSegment{owner: owner, tracker: newTracker()}
}

// SetISSN stores value verbatim and records a problem when it does not look
// like an ISSN or its modulus-11 check digit does not match. Validation is
// advisory; the value is kept either way.
func (s *ItemSegment) SetISSN(value string) {
	s.issn = optVal{value: value, set: true}
	switch {
	case !issnPattern.MatchString(value):
		s.tracker.Record("issn", "value does not match the ISSN pattern")
	case !issnCheckDigitOK(value):
		s.tracker.Record("issn", "ISSN check digit does not match")
	default:
		s.tracker.Clear("issn")
	}
}

// SetChronology stores the chronology, without the delimiting parentheses.
func (s *ItemSegment) SetChronology(value string) {
	s.chronology = optVal{value: value, set: true}
}

// SetEnumeration stores the raw, undecomposed enumeration.
func (s *ItemSegment) SetEnumeration(value string) {
	s.enumeration = optVal{value: value, set: true}
}

// SetVolume stores the volume part of a decomposed enumeration.
func (s *ItemSegment) SetVolume(value string) {
	s.volume = optVal{value: value, set: true}
}

// SetIssue stores the issue part of a decomposed enumeration.
func (s *ItemSegment) SetIssue(value string) {
	s.issue = optVal{value: value, set: true}
}

// SetSupplOrIdx stores the supplement ("+") or index ("*") marker.
func (s *ItemSegment) SetSupplOrIdx(value string) {
	s.supplOrIdx = optVal{value: value, set: true}
}

// ISSN returns the ISSN and whether one was set.
func (s *ItemSegment) ISSN() (string, bool) { return s.issn.value, s.issn.set }

// Chronology returns the chronology and whether one was set.
func (s *ItemSegment) Chronology() (string, bool) { return s.chronology.value, s.chronology.set }

// Enumeration returns the raw enumeration and whether one was set.
func (s *ItemSegment) Enumeration() (string, bool) { return s.enumeration.value, s.enumeration.set }

// Volume returns the volume and whether one was set.
func (s *ItemSegment) Volume() (string, bool) { return s.volume.value, s.volume.set }

// Issue returns the issue and whether one was set.
func (s *ItemSegment) Issue() (string, bool) { return s.issue.value, s.issue.set }

// SupplOrIdx returns the supplement/index marker and whether one was set.
func (s *ItemSegment) SupplOrIdx() (string, bool) { return s.supplOrIdx.value, s.supplOrIdx.set }

// String renders the segment in canonical form: the ISSN, the parenthesized
// chronology, then either volume:issue[:supplOrIdx] or the raw enumeration.
// Absent fields are omitted entirely.
func (s *ItemSegment) String() string {
	var b strings.Builder
	if s.issn.set {
		b.WriteString(s.issn.value)
	}
	if s.chronology.set {
		b.WriteByte('(')
		b.WriteString(s.chronology.value)
		b.WriteByte(')')
	}
	switch {
	case s.volume.set && s.issue.set:
		b.WriteString(s.volume.value)
		b.WriteByte(':')
		b.WriteString(s.issue.value)
		if s.supplOrIdx.set {
			b.WriteByte(':')
			b.WriteString(s.supplOrIdx.value)
		}
	case s.enumeration.set:
		b.WriteString(s.enumeration.value)
	}
	return b.String()
}

// Reset clears every field and every tracked problem.
func (s *ItemSegment) Reset() {
	s.issn = optVal{}
	s.chronology = optVal{}
	s.enumeration = optVal{}
	s.volume = optVal{}
	s.issue = optVal{}
	s.supplOrIdx = optVal{}
	s.tracker = newTracker()
}

// IsValid reports whether the segment has no recorded problems.
func (s *ItemSegment) IsValid() bool { return s.tracker.IsClean() }

// Problems returns a snapshot of the segment's recorded problems.
func (s *ItemSegment) Problems() map[string][]string { return s.tracker.Problems() }

// issnCheckDigitOK verifies the modulus-11 ISSN check digit; x or X stands
// for the value 10.
func issnCheckDigitOK(value string) bool {
	digits := value[:4] + value[5:8]
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (8 - i)
	}
	want := (11 - sum%11) % 11
	got := 0
	if last := value[8]; last == 'x' || last == 'X' {
		got = 10
	} else {
		got = int(last - '0')
	}
	return got == want
}
