package sici

// fieldState distinguishes an attribute that was never written from one
// holding a cached derived default and one set explicitly.
type fieldState uint8

const (
	fieldUnset fieldState = iota
	fieldDefault
	fieldExplicit
)

const (
	defaultDPI       = "0"
	defaultMFI       = "ZU"
	supportedVersion = "2"
)

// validMFI is the single source of truth for medium/format identifiers
// (case-sensitive two-letter codes).
var validMFI = map[string]bool{
	"CD": true, "CF": true, "CO": true, "CT": true,
	"HD": true, "HE": true,
	"SC": true,
	"TB": true, "TH": true, "TL": true, "TS": true, "TX": true,
	"VX": true,
	"ZN": true, "ZU": true, "ZZ": true,
}

// ControlSegment holds the control block: the code-structure identifier
// (csi), the derivative-part identifier (dpi), the medium/format identifier
// (mfi) and the standard version. Every field always has a value, explicit
// or defaulted; the csi default is derived from the sibling contribution
// segment and cached on first read.
type ControlSegment struct {
	owner *Sici

	csi struct {
		value string
		state fieldState
	}
	dpi     optVal
	mfi     optVal
	version optVal

	tracker *Tracker
}

func newControlSegment(owner *Sici) *ControlSegment {
	return &ControlSegment{owner: owner, tracker: newTracker()}
}

// SetCSI stores value verbatim; anything other than 1, 2 or 3 records a
// problem. An explicit value disables default derivation.
func (s *ControlSegment) SetCSI(value string) {
	s.csi.value, s.csi.state = value, fieldExplicit
	switch value {
	case "1", "2", "3":
		s.tracker.Clear("csi")
	default:
		s.tracker.Record("csi", "value must be 1, 2 or 3")
	}
}

// SetDPI stores value verbatim; anything other than 0-3 records a problem.
func (s *ControlSegment) SetDPI(value string) {
	s.dpi = optVal{value: value, set: true}
	switch value {
	case "0", "1", "2", "3":
		s.tracker.Clear("dpi")
	default:
		s.tracker.Record("dpi", "value must be 0, 1, 2 or 3")
	}
}

// SetMFI stores value verbatim; anything outside the fixed code set records
// a problem. Codes are case-sensitive.
func (s *ControlSegment) SetMFI(value string) {
	s.mfi = optVal{value: value, set: true}
	if !validMFI[value] {
		s.tracker.Record("mfi", "value is not a known medium/format identifier")
		return
	}
	s.tracker.Clear("mfi")
}

// SetVersion stores value verbatim; only version 2 of the standard is
// supported, anything else records a problem.
func (s *ControlSegment) SetVersion(value string) {
	s.version = optVal{value: value, set: true}
	if value != supportedVersion {
		s.tracker.Record("version", "only version "+supportedVersion+" of the standard is supported")
		return
	}
	s.tracker.Clear("version")
}

// CSI returns the code-structure identifier. With no explicit value set the
// default is derived from the contribution segment (3 when it has a local
// number, 2 when it has a location or title code, 1 otherwise) and cached.
// The cache is only invalidated by a contribution reset, so it can go stale
// if the contribution changes after the first read; that quirk is accepted,
// see DESIGN.md.
func (s *ControlSegment) CSI() string {
	if s.csi.state == fieldUnset {
		s.csi.value, s.csi.state = s.deriveCSIDefault(), fieldDefault
	}
	return s.csi.value
}

func (s *ControlSegment) deriveCSIDefault() string {
	if s.owner == nil || s.owner.contribution == nil {
		return "1"
	}
	c := s.owner.contribution
	switch {
	case c.localNumber.set:
		return "3"
	case c.location.set || c.titleCode.set:
		return "2"
	}
	return "1"
}

// invalidateCSIDefault drops a cached derived default so the next read
// recomputes it. Explicit values are untouched.
func (s *ControlSegment) invalidateCSIDefault() {
	if s.csi.state == fieldDefault {
		s.csi.value, s.csi.state = "", fieldUnset
	}
}

// DPI returns the derivative-part identifier, defaulting to 0.
func (s *ControlSegment) DPI() string {
	if s.dpi.set {
		return s.dpi.value
	}
	return defaultDPI
}

// MFI returns the medium/format identifier, defaulting to ZU.
func (s *ControlSegment) MFI() string {
	if s.mfi.set {
		return s.mfi.value
	}
	return defaultMFI
}

// Version returns the standard version, defaulting to 2.
func (s *ControlSegment) Version() string {
	if s.version.set {
		return s.version.value
	}
	return supportedVersion
}

// String renders the fixed layout csi.dpi.mfi;version. Every field has a
// value, explicit or defaulted, so no presence checks are needed.
func (s *ControlSegment) String() string {
	return s.CSI() + "." + s.DPI() + "." + s.MFI() + ";" + s.Version()
}

// Reset clears all four fields, including the cached csi default, and every
// tracked problem.
func (s *ControlSegment) Reset() {
	s.csi.value, s.csi.state = "", fieldUnset
	s.dpi = optVal{}
	s.mfi = optVal{}
	s.version = optVal{}
	s.tracker = newTracker()
}

// IsValid reports whether the segment has no recorded problems.
func (s *ControlSegment) IsValid() bool { return s.tracker.IsClean() }

// Problems returns a snapshot of the segment's recorded problems.
func (s *ControlSegment) Problems() map[string][]string { return s.tracker.Problems() }
