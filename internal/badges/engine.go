package badges

// Progress is the slice of study progress badges are derived from.
type Progress struct {
	Completed int
	Total     int
}

// Triggers are one-shot achievements that are not derivable from progress.
type Triggers struct {
	ChallengeUsed bool
	QuizPerfect   bool
}

// Set is a set of earned badges. The zero value is an empty set.
type Set map[ID]bool

// NewSet builds a set from ids, ignoring unknown ones.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id.Valid() {
			s[id] = true
		}
	}
	return s
}

// ParseSet builds a set from persisted string IDs, ignoring unknown ones.
func ParseSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if ID(id).Valid() {
			s[ID(id)] = true
		}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	return s[id]
}

// Len returns the number of badges in the set.
func (s Set) Len() int {
	return len(s)
}

// Union returns a new set holding the badges of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = true
	}
	for id := range other {
		out[id] = true
	}
	return out
}

// IDs returns the members in display order.
func (s Set) IDs() []ID {
	var out []ID
	for _, id := range All() {
		if s[id] {
			out = append(out, id)
		}
	}
	return out
}

// Strings returns the members as strings in display order, for persistence.
func (s Set) Strings() []string {
	var out []string
	for _, id := range s.IDs() {
		out = append(out, string(id))
	}
	return out
}

// Derive computes the badges implied by p and t. It is pure.
func Derive(p Progress, t Triggers) Set {
	s := make(Set)
	if p.Completed >= 1 {
		s[FirstStep] = true
	}
	if p.Completed >= 3 {
		s[CuriousMind] = true
	}
	if p.Total > 0 {
		if p.Completed*2 >= p.Total {
			s[Halfway] = true
		}
		if p.Completed >= p.Total {
			s[Master] = true
		}
	}
	if t.ChallengeUsed {
		s[ChallengeMaster] = true
	}
	if t.QuizPerfect {
		s[QuizChampion] = true
	}
	return s
}

// Recompute merges the derived badges into prev. It returns the new set and
// the badges that were not in prev, in display order. Badges are never
// revoked.
func Recompute(prev Set, p Progress, t Triggers) (Set, []ID) {
	next := prev.Union(Derive(p, t))
	var newly []ID
	for _, id := range next.IDs() {
		if !prev.Has(id) {
			newly = append(newly, id)
		}
	}
	return next, newly
}
