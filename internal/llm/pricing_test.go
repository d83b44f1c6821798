package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model    string
		calls    int
		in, out  int
		want     float64
		wantNone bool
	}{
		{model: "gpt-4o-mini", calls: 1, in: 1_000_000, out: 1_000_000, want: 0.75},
		{model: "google/gemini-2.5-flash", calls: 2, in: 2_000_000, want: 0.6},
		{model: "imagen-3.0-generate-002", calls: 3, want: 0.09},
		{model: "mock", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if tt.wantNone {
				if c != nil {
					t.Fatalf("expected no pricing for %q", tt.model)
				}
				return
			}
			if c == nil {
				t.Fatalf("missing pricing for %q", tt.model)
			}
			if got := c.Cost(tt.calls, tt.in, tt.out); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Cost = %v, want %v", got, tt.want)
			}
		})
	}
}
