package progress

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrNoMainTopic     = errors.New("plan has no main topic")
	ErrNoSubTopics     = errors.New("plan has no sub-topics")
	ErrUnknownSubTopic = errors.New("sub-topic is not part of the plan")
)

// Plan is an ordered list of sub-topics under a main topic. A Plan is
// immutable once built; a new topic replaces it wholesale.
type Plan struct {
	MainTopic string
	subTopics []string
}

// NewPlan validates and normalizes a plan. Sub-topics are trimmed, empty
// entries dropped and duplicates (case-insensitive) removed, keeping the
// first occurrence.
func NewPlan(mainTopic string, subTopics []string) (Plan, error) {
	mainTopic = strings.TrimSpace(mainTopic)
	if mainTopic == "" {
		return Plan{}, ErrNoMainTopic
	}

	seen := make(map[string]bool, len(subTopics))
	cleaned := make([]string, 0, len(subTopics))
	for _, s := range subTopics {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, s)
	}
	if len(cleaned) == 0 {
		return Plan{}, fmt.Errorf("%w: %q", ErrNoSubTopics, mainTopic)
	}

	return Plan{MainTopic: mainTopic, subTopics: cleaned}, nil
}

// SubTopics returns a copy of the ordered sub-topics.
func (p Plan) SubTopics() []string {
	return slices.Clone(p.subTopics)
}

// Len returns the number of sub-topics.
func (p Plan) Len() int {
	return len(p.subTopics)
}

// Index returns the position of name in the plan, or -1.
func (p Plan) Index(name string) int {
	return slices.Index(p.subTopics, name)
}

// At returns the sub-topic at i.
func (p Plan) At(i int) string {
	return p.subTopics[i]
}

// IsZero reports whether p is the empty plan.
func (p Plan) IsZero() bool {
	return p.MainTopic == "" && len(p.subTopics) == 0
}
