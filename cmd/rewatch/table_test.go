package main

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Watched", "Series", "Confidence"},
		[][]string{
			{"2024-01-02", "The Wire", "1.00"},
			{"2024-01-03", "Two and a Half Men", "0.85"},
		},
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
	for _, want := range []string{"Watched", "The Wire", "Two and a Half Men", "0.85"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("headerless table must render empty")
	}
}
