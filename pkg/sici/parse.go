package sici

import (
	"regexp"
	"strings"

	dErrors "sici/pkg/domain-errors"
)

// Result reports the outcome of a Parse call.
type Result struct {
	// Valid is the aggregate validity after tokenization.
	Valid bool
	// RoundTrip reports whether re-serializing the aggregate reproduced the
	// raw input character for character.
	RoundTrip bool
	// Compared is false when parsing stopped before tokenization (lax mode,
	// empty input); RoundTrip then carries no information.
	Compared bool
}

// versionMarker matches the version digit embedded in the terminal
// ";version-checkchar" pattern of a SICI.
var versionMarker = regexp.MustCompile(`;([0-9])-?.?$`)

// Parse tokenizes raw into the three segments, populating them through
// their normal setters so validation fires during parsing. The aggregate is
// reset first; the raw string is captured and available via ParsedString.
//
// In lax mode Parse never fails: it reports aggregate validity and whether
// the canonical re-serialization matches raw. In strict mode it aborts with
// CodeInvalidInput on empty input, with CodeUnsupportedVersion when the
// terminal version marker is not 2 (before any attribute is touched), and
// with CodeInvalidIdentifier when the aggregate is invalid after
// tokenization; the partially populated state is left in place.
func (s *Sici) Parse(raw string) (Result, error) {
	if raw == "" {
		if s.mode == ModeStrict {
			return Result{}, dErrors.New(dErrors.CodeInvalidInput, "cannot parse an empty string")
		}
		return Result{}, nil
	}
	if m := versionMarker.FindStringSubmatch(raw); m != nil && m[1] != supportedVersion {
		if s.mode == ModeStrict {
			return Result{}, dErrors.New(dErrors.CodeUnsupportedVersion, "unsupported SICI version "+m[1])
		}
		// Lax: tokenize anyway; the version setter records the problem.
	}

	s.Reset()
	s.parsed = optVal{value: raw, set: true}
	s.tokenize(raw)

	valid := s.IsValid()
	if s.mode == ModeStrict && !valid {
		return Result{}, dErrors.New(dErrors.CodeInvalidIdentifier, "parsed SICI has conformance problems")
	}
	return Result{Valid: valid, RoundTrip: s.String() == raw, Compared: true}, nil
}

// tokenize runs the left-to-right state machine over raw. Each stage
// greedily consumes while its character class holds; there is no
// backtracking. Short input makes later stages no-ops.
func (s *Sici) tokenize(raw string) {
	sc := &scanner{input: raw}

	if issn := sc.takeWhile(isISSNChar); issn != "" {
		s.Item().SetISSN(issn)
	}

	if sc.peek() == '(' {
		sc.skip()
		if chron := sc.takeWhile(isChronologyChar); chron != "" {
			s.Item().SetChronology(chron)
		}
		if sc.peek() == ')' {
			sc.skip()
		}
	}

	if enum := sc.takeUntil('<'); enum != "" {
		s.setEnumeration(enum)
	}

	if sc.peek() == '<' {
		sc.skip()
		buffer := sc.takeUntil('>')
		if sc.peek() == '>' {
			sc.skip()
		}
		s.setContribution(buffer)
	}

	// Control block: fixed-width fields with separator skips. Each step
	// silently does nothing once input is exhausted.
	if c, ok := sc.next(); ok {
		s.Control().SetCSI(string(c))
	}
	sc.skip() // '.'
	if c, ok := sc.next(); ok {
		s.Control().SetDPI(string(c))
	}
	sc.skip() // '.'
	if mfi, ok := sc.takeN(2); ok {
		s.Control().SetMFI(mfi)
	}
	sc.skip() // ';'
	if c, ok := sc.next(); ok {
		s.Control().SetVersion(string(c))
	}
	// The trailing "-checkchar" is never consumed or verified here; checksum
	// agreement surfaces through the round-trip comparison instead.
}

// setEnumeration decomposes text into volume/issue/supplOrIdx when it has
// the VOL:ISSUE[:suppl] shape (suppl exactly "+" or "*"); otherwise the text
// is stored as the raw enumeration.
func (s *Sici) setEnumeration(text string) {
	parts := strings.Split(text, ":")
	switch {
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		s.Item().SetVolume(parts[0])
		s.Item().SetIssue(parts[1])
	case len(parts) == 3 && parts[0] != "" && parts[1] != "" && (parts[2] == "+" || parts[2] == "*"):
		s.Item().SetVolume(parts[0])
		s.Item().SetIssue(parts[1])
		s.Item().SetSupplOrIdx(parts[2])
	default:
		s.Item().SetEnumeration(text)
	}
}

// setContribution decomposes the text between the angle brackets, trying in
// order: "::LOCALNUM", ":TITLECODE[:LOCALNUM]", "LOCATION:TITLECODE
// [:LOCALNUM]", then a bare location.
func (s *Sici) setContribution(buffer string) {
	c := s.Contribution()
	switch {
	case strings.HasPrefix(buffer, "::"):
		c.SetLocalNumber(buffer[2:])
	case strings.HasPrefix(buffer, ":"):
		rest := buffer[1:]
		if i := strings.IndexByte(rest, ':'); i >= 0 {
			c.SetTitleCode(rest[:i])
			c.SetLocalNumber(rest[i+1:])
		} else {
			c.SetTitleCode(rest)
		}
	case strings.Contains(buffer, ":"):
		parts := strings.SplitN(buffer, ":", 3)
		c.SetLocation(parts[0])
		c.SetTitleCode(parts[1])
		if len(parts) == 3 {
			c.SetLocalNumber(parts[2])
		}
	default:
		if buffer != "" {
			c.SetLocation(buffer)
		}
	}
}

// scanner is a cursor over the input with greedy character-class consumption
// and no backtracking.
type scanner struct {
	input string
	pos   int
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.input) {
		return 0
	}
	return sc.input[sc.pos]
}

// skip advances past one character, if any remains.
func (sc *scanner) skip() {
	if sc.pos < len(sc.input) {
		sc.pos++
	}
}

// next consumes and returns one character.
func (sc *scanner) next() (byte, bool) {
	if sc.pos >= len(sc.input) {
		return 0, false
	}
	b := sc.input[sc.pos]
	sc.pos++
	return b, true
}

// takeN consumes exactly n characters, or nothing when fewer remain.
func (sc *scanner) takeN(n int) (string, bool) {
	if sc.pos+n > len(sc.input) {
		return "", false
	}
	out := sc.input[sc.pos : sc.pos+n]
	sc.pos += n
	return out, true
}

// takeWhile consumes while pred holds.
func (sc *scanner) takeWhile(pred func(byte) bool) string {
	start := sc.pos
	for sc.pos < len(sc.input) && pred(sc.input[sc.pos]) {
		sc.pos++
	}
	return sc.input[start:sc.pos]
}

// takeUntil consumes up to, not including, the stop character (or the end
// of input).
func (sc *scanner) takeUntil(stop byte) string {
	start := sc.pos
	for sc.pos < len(sc.input) && sc.input[sc.pos] != stop {
		sc.pos++
	}
	return sc.input[start:sc.pos]
}

func isISSNChar(b byte) bool {
	return b >= '0' && b <= '9' || b == 'X' || b == '-'
}

func isChronologyChar(b byte) bool {
	return b >= '0' && b <= '9' || b == '/'
}
