package progress

import (
	"errors"
	"testing"
)

func biologyPlan(t *testing.T) Plan {
	t.Helper()
	p, err := NewPlan("Human Biology", []string{"Cells", "Tissues", "Organs", "Organ Systems", "Homeostasis"})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	return p
}

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name    string
		main    string
		subs    []string
		want    []string
		wantErr error
	}{
		{"normalizes", "  Chemistry ", []string{" Atoms", "Bonds ", "", "atoms", "Reactions"}, []string{"Atoms", "Bonds", "Reactions"}, nil},
		{"missing main topic", "   ", []string{"A"}, nil, ErrNoMainTopic},
		{"no sub-topics", "Physics", nil, nil, ErrNoSubTopics},
		{"only blanks", "Physics", []string{" ", ""}, nil, ErrNoSubTopics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(tt.main, tt.subs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := p.SubTopics()
			if len(got) != len(tt.want) {
				t.Fatalf("sub-topics = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("sub-topics = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSelectableFollowsCompletion(t *testing.T) {
	tr := NewTracker(biologyPlan(t))

	if !tr.Selectable(0) || tr.Selectable(1) {
		t.Fatal("only the first sub-topic should be open initially")
	}
	if tr.Selectable(-1) || tr.Selectable(5) {
		t.Fatal("out-of-range indices are never selectable")
	}

	if err := tr.MarkComplete("Cells"); err != nil {
		t.Fatal(err)
	}
	if !tr.SelectableByName("Tissues") || tr.SelectableByName("Organs") {
		t.Fatal("completing Cells should open Tissues only")
	}

	// Completing out of order (after unlock-all) opens the following topic.
	tr.UnlockAll()
	if err := tr.MarkComplete("Organ Systems"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if !tr.Selectable(i) {
			t.Fatalf("sub-topic %d should be selectable after unlock-all", i)
		}
	}
	if tr.SelectableByName("Unknown") {
		t.Fatal("unknown names are never selectable")
	}
}

func TestMarkCompleteRejectsUnknown(t *testing.T) {
	tr := NewTracker(biologyPlan(t))
	if err := tr.MarkComplete("Astronomy"); !errors.Is(err, ErrUnknownSubTopic) {
		t.Fatalf("expected ErrUnknownSubTopic, got %v", err)
	}
	if tr.CompletedCount() != 0 {
		t.Fatal("unknown topic must not be recorded")
	}
}

func TestRatioAndAllComplete(t *testing.T) {
	tr := NewTracker(biologyPlan(t))
	if tr.Ratio() != 0 {
		t.Fatalf("ratio = %v", tr.Ratio())
	}

	for _, s := range []string{"Cells", "Tissues", "Cells"} {
		tr.MarkComplete(s)
	}
	if tr.Ratio() != 0.4 {
		t.Fatalf("ratio = %v, want 0.4", tr.Ratio())
	}
	if tr.AllComplete() {
		t.Fatal("not all complete yet")
	}

	for _, s := range []string{"Organs", "Organ Systems", "Homeostasis"} {
		tr.MarkComplete(s)
	}
	if tr.Ratio() != 1 || !tr.AllComplete() {
		t.Fatalf("ratio = %v, all = %v", tr.Ratio(), tr.AllComplete())
	}

	var empty Tracker
	if empty.Ratio() != 0 || empty.AllComplete() {
		t.Fatal("empty tracker should report zero progress")
	}
}

func TestSteps(t *testing.T) {
	tr := NewTracker(biologyPlan(t))
	tr.MarkComplete("Cells")

	steps := tr.Steps()
	if len(steps) != 5 {
		t.Fatalf("steps = %d", len(steps))
	}
	if !steps[0].Completed || !steps[0].Unlocked || steps[0].Next {
		t.Fatalf("step 0 = %+v", steps[0])
	}
	if steps[1].Completed || !steps[1].Unlocked || !steps[1].Next {
		t.Fatalf("step 1 = %+v", steps[1])
	}
	if steps[2].Unlocked || steps[2].Next {
		t.Fatalf("step 2 = %+v", steps[2])
	}
}

func TestResetAndRestore(t *testing.T) {
	tr := NewTracker(biologyPlan(t))
	tr.MarkComplete("Cells")
	tr.UnlockAll()

	tr.Reset()
	if tr.CompletedCount() != 0 || tr.AllUnlocked() {
		t.Fatal("reset should clear everything")
	}

	tr.Restore([]string{"Tissues", "Cells", "Dropped Topic"}, true)
	got := tr.Completed()
	if len(got) != 2 || got[0] != "Cells" || got[1] != "Tissues" {
		t.Fatalf("completed = %v, want plan order [Cells Tissues]", got)
	}
	if !tr.AllUnlocked() {
		t.Fatal("unlock flag not restored")
	}
}
