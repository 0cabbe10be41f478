package textutil

import "testing"

func TestExtractPartNumber(t *testing.T) {
	cases := []struct {
		in       string
		wantBase string
		wantPart int
		wantOK   bool
	}{
		{"Finale, Pt. 2", "Finale", 2, true},
		{"Finale (2)", "Finale", 2, true},
		{"Finale - Part 1", "Finale", 1, true},
		{"Finale: Part 3", "Finale", 3, true},
		{"Finale Part 2", "Finale", 2, true},
		{"Finale Pt. 2", "Finale", 2, true},
		{"Finale Pt 2", "Finale", 2, true},
		{"Finale", "Finale", 0, false},
		{"Part of the Journey", "Part of the Journey", 0, false},
		{"Catch-22", "Catch-22", 0, false},
	}
	for _, tc := range cases {
		base, part, ok := ExtractPartNumber(tc.in)
		if base != tc.wantBase || part != tc.wantPart || ok != tc.wantOK {
			t.Fatalf("ExtractPartNumber(%q)=(%q,%d,%v) want (%q,%d,%v)",
				tc.in, base, part, ok, tc.wantBase, tc.wantPart, tc.wantOK)
		}
	}
}

func TestExtractPartNumberPriority(t *testing.T) {
	// ", Pt. N" outranks the bare "(N)" form.
	base, part, ok := ExtractPartNumber("Finale (3), Pt. 2")
	if !ok || part != 2 || base != "Finale (3)" {
		t.Fatalf("got (%q,%d,%v)", base, part, ok)
	}
}
