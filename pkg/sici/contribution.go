package sici

import (
	"regexp"
	"strings"
)

// tokenPattern is the character class for contribution tokens. location and
// localNumber reuse the title-code class; flagged for review rather than
// widened, see DESIGN.md.
var tokenPattern = regexp.MustCompile(`^[0-9A-Za-z./+*-]+$`)

const maxTitleCodeLen = 6

// ContributionSegment describes a single contribution within the item: its
// location (typically the starting page), the title code and the local
// number. The segment may be entirely empty; a SICI need not describe a
// contribution.
type ContributionSegment struct {
	owner *Sici

	location    optVal
	titleCode   optVal
	localNumber optVal

	tracker *Tracker
}

func newContributionSegment(owner *Sici) *ContributionSegment {
	return &ContributionSegment{owner: owner, tracker: newTracker()}
}

// SetLocation stores value verbatim and records a character-class problem
// when it does not conform. Validation is advisory.
func (s *ContributionSegment) SetLocation(value string) {
	s.location = optVal{value: value, set: true}
	s.checkToken("location", value)
}

// SetTitleCode stores value verbatim. A title code longer than six
// characters and one with characters outside the permitted set each record a
// problem; both may be recorded together.
func (s *ContributionSegment) SetTitleCode(value string) {
	s.titleCode = optVal{value: value, set: true}
	var problems []string
	if len(value) > maxTitleCodeLen {
		problems = append(problems, "value is longer than 6 characters")
	}
	if !tokenPattern.MatchString(value) {
		problems = append(problems, "value contains characters outside the permitted set")
	}
	if len(problems) > 0 {
		s.tracker.Record("titleCode", problems...)
		return
	}
	s.tracker.Clear("titleCode")
}

// SetLocalNumber stores value verbatim and records a character-class problem
// when it does not conform. Validation is advisory.
func (s *ContributionSegment) SetLocalNumber(value string) {
	s.localNumber = optVal{value: value, set: true}
	s.checkToken("localNumber", value)
}

func (s *ContributionSegment) checkToken(attr, value string) {
	if !tokenPattern.MatchString(value) {
		s.tracker.Record(attr, "value contains characters outside the permitted set")
		return
	}
	s.tracker.Clear(attr)
}

// Location returns the location and whether one was set.
func (s *ContributionSegment) Location() (string, bool) { return s.location.value, s.location.set }

// TitleCode returns the title code and whether one was set.
func (s *ContributionSegment) TitleCode() (string, bool) { return s.titleCode.value, s.titleCode.set }

// LocalNumber returns the local number and whether one was set.
func (s *ContributionSegment) LocalNumber() (string, bool) {
	return s.localNumber.value, s.localNumber.set
}

// String renders the segment. A title code is prefixed with one colon; a
// local number with one colon when a location or title code precedes it and
// with two colons when it stands alone.
func (s *ContributionSegment) String() string {
	var b strings.Builder
	if s.location.set {
		b.WriteString(s.location.value)
	}
	if s.titleCode.set {
		b.WriteByte(':')
		b.WriteString(s.titleCode.value)
	}
	if s.localNumber.set {
		if s.location.set || s.titleCode.set {
			b.WriteByte(':')
		} else {
			b.WriteString("::")
		}
		b.WriteString(s.localNumber.value)
	}
	return b.String()
}

// Reset clears every field and every tracked problem. Because the control
// segment's csi default is derived from contribution state, any cached csi
// default on the sibling segment is invalidated so it can recompute.
func (s *ContributionSegment) Reset() {
	s.location = optVal{}
	s.titleCode = optVal{}
	s.localNumber = optVal{}
	s.tracker = newTracker()
	if s.owner != nil && s.owner.control != nil {
		s.owner.control.invalidateCSIDefault()
	}
}

// IsValid reports whether the segment has no recorded problems.
func (s *ContributionSegment) IsValid() bool { return s.tracker.IsClean() }

// Problems returns a snapshot of the segment's recorded problems.
func (s *ContributionSegment) Problems() map[string][]string { return s.tracker.Problems() }
