package sici

import (
	"strings"

	"sici/internal/checksum"
	dErrors "sici/pkg/domain-errors"
)

// Mode selects the failure policy of the engine.
//
// Invariant: the mode is fixed at construction and normalized from external
// input via ParseMode; an unknown mode is a hard error in either mode.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeLax    Mode = "lax"
)

// ParseMode normalizes an externally supplied mode string. Matching is
// case- and surrounding-whitespace-insensitive; the empty string means lax.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLax:
		return ModeLax, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported mode: "+s)
}

// ChecksumFunc produces the trailing check character for a canonical SICI
// prefix, i.e. everything before the final hyphen. Implementations must be
// deterministic and pure.
type ChecksumFunc func(prefix string) byte

// optVal tracks presence independently of the stored value.
type optVal struct {
	value string
	set   bool
}

// Sici is the root aggregate. It exclusively owns its three segments, which
// are created lazily and hold a non-owning back-reference used for
// cross-segment default derivation and cache invalidation.
type Sici struct {
	mode   Mode
	parsed optVal

	item         *ItemSegment
	contribution *ContributionSegment
	control      *ControlSegment

	checksum ChecksumFunc
}

// New constructs a Sici operating in the given mode. The empty string
// selects lax mode; an unknown mode is a hard error.
func New(mode string) (*Sici, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &Sici{mode: m, checksum: checksum.Character}, nil
}

// Mode returns the operating mode fixed at construction.
func (s *Sici) Mode() Mode { return s.mode }

// SetChecksumFunc replaces the check character source; nil restores the
// built-in Z39.56 implementation.
func (s *Sici) SetChecksumFunc(fn ChecksumFunc) {
	if fn == nil {
		fn = checksum.Character
	}
	s.checksum = fn
}

// Item returns the item segment, creating it on first access.
func (s *Sici) Item() *ItemSegment {
	if s.item == nil {
		s.item = newItemSegment(s)
	}
	return s.item
}

// Contribution returns the contribution segment, creating it on first
// access.
func (s *Sici) Contribution() *ContributionSegment {
	if s.contribution == nil {
		s.contribution = newContributionSegment(s)
	}
	return s.contribution
}

// Control returns the control segment, creating it on first access.
func (s *Sici) Control() *ControlSegment {
	if s.control == nil {
		s.control = newControlSegment(s)
	}
	return s.control
}

// ParsedString returns the raw string captured by the most recent Parse
// call, and whether one exists.
func (s *Sici) ParsedString() (string, bool) { return s.parsed.value, s.parsed.set }

// IsValid reports whether all three segments are free of recorded problems.
// It only reflects what prior mutations recorded; nothing is re-validated.
func (s *Sici) IsValid() bool {
	return s.Item().IsValid() && s.Contribution().IsValid() && s.Control().IsValid()
}

// Problems aggregates the three segments' recorded problems under
// "segment.attribute" keys.
func (s *Sici) Problems() map[string][]string {
	out := make(map[string][]string)
	collect := func(segment string, problems map[string][]string) {
		for attr, msgs := range problems {
			out[segment+"."+attr] = msgs
		}
	}
	collect("item", s.Item().Problems())
	collect("contribution", s.Contribution().Problems())
	collect("control", s.Control().Problems())
	return out
}

// Reset returns every segment to its unset state, clears all recorded
// problems and forgets the last parsed string.
func (s *Sici) Reset() {
	s.Item().Reset()
	s.Contribution().Reset()
	s.Control().Reset()
	s.parsed = optVal{}
}

// String renders the canonical form and appends the check character. It is
// always available, regardless of validity.
func (s *Sici) String() string {
	prefix := s.Item().String() + "<" + s.Contribution().String() + ">" + s.Control().String()
	return prefix + "-" + string(s.checksum(prefix))
}
