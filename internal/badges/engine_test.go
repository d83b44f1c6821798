package badges

import (
	"slices"
	"testing"

	"github.com/abhisek/studybuddy/internal/locale"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		t    Triggers
		want []ID
	}{
		{"nothing", Progress{0, 5}, Triggers{}, nil},
		{"first", Progress{1, 5}, Triggers{}, []ID{FirstStep}},
		{"halfway rounds up", Progress{3, 6}, Triggers{}, []ID{FirstStep, CuriousMind, Halfway}},
		{"below half", Progress{2, 5}, Triggers{}, []ID{FirstStep}},
		{"all done", Progress{5, 5}, Triggers{}, []ID{FirstStep, CuriousMind, Halfway, Master}},
		{"short plan", Progress{2, 2}, Triggers{}, []ID{FirstStep, Halfway, Master}},
		{"empty plan", Progress{0, 0}, Triggers{}, nil},
		{"triggers only", Progress{0, 5}, Triggers{ChallengeUsed: true, QuizPerfect: true}, []ID{ChallengeMaster, QuizChampion}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.p, tt.t).IDs()
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Derive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecomputeIsMonotonic(t *testing.T) {
	prev := NewSet(Master, ChallengeMaster)

	// Progress went back to zero (new plan) but earned badges stay.
	next, newly := Recompute(prev, Progress{1, 5}, Triggers{})
	if !next.Has(Master) || !next.Has(ChallengeMaster) || !next.Has(FirstStep) {
		t.Fatalf("next = %v", next.IDs())
	}
	if !slices.Equal(newly, []ID{FirstStep}) {
		t.Fatalf("newly = %v", newly)
	}
	if prev.Has(FirstStep) {
		t.Fatal("Recompute must not mutate prev")
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	p := Progress{3, 5}
	trig := Triggers{ChallengeUsed: true}

	once, _ := Recompute(nil, p, trig)
	twice, newly := Recompute(once, p, trig)
	if len(newly) != 0 {
		t.Fatalf("second recompute produced %v", newly)
	}
	if !slices.Equal(once.IDs(), twice.IDs()) {
		t.Fatalf("%v != %v", once.IDs(), twice.IDs())
	}
}

func TestRecomputeOrderIndependent(t *testing.T) {
	a, _ := Recompute(nil, Progress{1, 4}, Triggers{})
	a, _ = Recompute(a, Progress{2, 4}, Triggers{QuizPerfect: true})

	b, _ := Recompute(nil, Progress{2, 4}, Triggers{QuizPerfect: true})
	b, _ = Recompute(b, Progress{1, 4}, Triggers{})

	if !slices.Equal(a.IDs(), b.IDs()) {
		t.Fatalf("%v != %v", a.IDs(), b.IDs())
	}
}

func TestParseSetDropsUnknown(t *testing.T) {
	s := ParseSet([]string{"halfway", "gold_star", "first_step"})
	if !slices.Equal(s.Strings(), []string{"first_step", "halfway"}) {
		t.Fatalf("Strings = %v", s.Strings())
	}
}

func TestEveryBadgeHasMetadata(t *testing.T) {
	for _, lang := range []string{"en", "tr"} {
		c := locale.New(lang)
		for _, id := range All() {
			if id.Icon() == "✦" {
				t.Errorf("%s has no icon", id)
			}
			if id.Name(c) == "" || id.Name(c) == string(id) {
				t.Errorf("%s/%s has no name", lang, id)
			}
			if id.Description(c) == "" {
				t.Errorf("%s/%s has no description", lang, id)
			}
		}
	}
	if got := ID("bogus").Name(locale.New("en")); got != "bogus" {
		t.Fatalf("unknown badge name = %q", got)
	}
}
