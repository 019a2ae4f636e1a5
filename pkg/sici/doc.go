// Package sici parses, validates, mutates and serializes Serial Item and
// Contribution Identifiers (ANSI/NISO Z39.56).
//
// A SICI is a fixed-grammar bibliographic code:
//
//	ISSN(CHRONOLOGY)ENUMERATION<CONTRIBUTION>CSI.DPI.MFI;VERSION-CHECKCHAR
//
// The Sici aggregate owns three segments (item, contribution and control),
// each of which tracks per-attribute conformance problems. Validation is
// advisory: setters always store the given value and separately record any
// violations, so malformed real-world identifiers can still be parsed,
// stringified and diagnosed. Validity is queried afterwards through IsValid
// and Problems.
//
// Two operating modes exist. In lax mode (the default) Parse never fails; it
// reports a validity flag and a round-trip flag. In strict mode Parse aborts
// on empty input, on an unsupported version marker, and on aggregate
// invalidity after tokenization.
//
// Instances are not safe for concurrent mutation; use one Sici per
// goroutine.
package sici
