package sici

// Tracker maps attribute names to recorded conformance problems. Absence of
// an entry means "no known problem". Every segment embeds one; segment
// setters keep it consistent with the last-written value.
type Tracker struct {
	problems map[string][]string
}

func newTracker() *Tracker {
	return &Tracker{problems: make(map[string][]string)}
}

// Record stores the given problem messages for attr, replacing any prior
// entry. Calling it with no messages is a no-op.
func (t *Tracker) Record(attr string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	t.problems[attr] = append([]string(nil), messages...)
}

// Clear removes the problem entry for attr.
func (t *Tracker) Clear(attr string) {
	delete(t.problems, attr)
}

// Problems returns a snapshot of all recorded problems. Mutating the result
// does not affect the tracker.
func (t *Tracker) Problems() map[string][]string {
	out := make(map[string][]string, len(t.problems))
	for attr, msgs := range t.problems {
		if len(msgs) == 0 {
			continue
		}
		out[attr] = append([]string(nil), msgs...)
	}
	return out
}

// IsClean reports whether no attribute has a recorded problem.
func (t *Tracker) IsClean() bool {
	for _, msgs := range t.problems {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}
