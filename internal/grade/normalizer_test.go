package grade

import "testing"

func TestNormalizeNumericGrades(t *testing.T) {
	tests := []struct {
		title string
		want  Token
	}{
		{"Lugia Holo PSA 10 Gem Mint", PSA10},
		{"Lugia Holo PSA10", PSA10},
		{"Lugia Holo PSA 9", PSA9},
		{"Lugia Holo PSA 1 Poor", PSA1},
		{"Lugia BGS 9.5 Gem Mint", BGS95},
		{"Lugia BGS 9 Mint", BGS9},
		{"Lugia BGS9.5 quad", BGS95},
		{"Lugia CGC 8.5", CGC85},
		{"Lugia SGC 10", SGC10},
		{"Lugia SGC 9.5", SGC95},
	}
	for _, tt := range tests {
		got := Normalize(tt.title, "")
		if !got.Matched || got.Grade != tt.want {
			t.Fatalf("Normalize(%q) = %+v, want %s", tt.title, got, tt.want)
		}
		if !got.Graded {
			t.Fatalf("Normalize(%q) graded=false, want true", tt.title)
		}
	}
}

func TestNormalizeBoundaries(t *testing.T) {
	// "PSA 1" must not fire inside "PSA 10", "BGS 9" not inside "BGS 9.5".
	tests := []struct {
		title string
		want  Token
	}{
		{"PSA 10", PSA10},
		{"PSA 1", PSA1},
		{"BGS 9.5", BGS95},
		{"BGS 9", BGS9},
		{"CGC 7.5", CGC75},
		{"CGC 7", CGC7},
	}
	for _, tt := range tests {
		got := Normalize(tt.title, "")
		if got.Grade != tt.want {
			t.Fatalf("Normalize(%q) = %s, want %s", tt.title, got.Grade, tt.want)
		}
	}
}

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		title string
		want  Token
	}{
		{"Lugia BGS Black Label", BGS10},
		{"Lugia Beckett 10 Pristine", BGS10},
		{"Lugia Beckett 9.5", BGS95},
		{"Lugia CGC 10 Pristine", CGC10Pristine},
		{"Lugia CGC Pristine 10", CGC10Pristine},
		{"Lugia CGC Perfect 10", CGC10},
		{"Lugia CGC Gem Mint 9.5", CGC95},
		{"Lugia PSA GEM MT 10", PSA10},
	}
	for _, tt := range tests {
		got := Normalize(tt.title, "")
		if !got.Matched || got.Grade != tt.want {
			t.Fatalf("Normalize(%q) = %+v, want %s", tt.title, got, tt.want)
		}
	}
}

func TestNormalizeSpecificityWins(t *testing.T) {
	// Overlapping signatures in one title resolve to the most specific.
	got := Normalize("CGC 10 Pristine Lugia Neo Genesis", "")
	if got.Grade != CGC10Pristine {
		t.Fatalf("got %s, want %s", got.Grade, CGC10Pristine)
	}
	got = Normalize("CGC Gem Mint Lugia", "")
	if got.Grade != CGC95 {
		t.Fatalf("got %s, want %s", got.Grade, CGC95)
	}
}

func TestNormalizeOutOfRange(t *testing.T) {
	for _, title := range []string{"Lugia PSA 11", "Lugia BGS 6", "Lugia SGC 7", "Lugia PSA 0"} {
		got := Normalize(title, "")
		if got.Matched {
			t.Fatalf("Normalize(%q) matched %s, want no match", title, got.Grade)
		}
	}
}

func TestNormalizeRaw(t *testing.T) {
	tests := []struct {
		title     string
		condition string
	}{
		{"Lugia Neo Genesis raw near mint", ""},
		{"Lugia ungraded NM", ""},
		{"Lugia Neo Genesis", "Ungraded"},
		{"Lugia not graded pack fresh", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.title, tt.condition)
		if !got.Matched || got.Grade != Raw {
			t.Fatalf("Normalize(%q, %q) = %+v, want Raw", tt.title, tt.condition, got)
		}
		if got.Graded {
			t.Fatalf("Normalize(%q, %q) graded=true, want false", tt.title, tt.condition)
		}
	}
}

func TestNormalizeGradedWithoutToken(t *testing.T) {
	got := Normalize("Lugia Neo Genesis 9/111 Holo", "Graded")
	if got.Matched {
		t.Fatalf("unexpected token %s", got.Grade)
	}
	if !got.Graded {
		t.Fatalf("graded=false, want true")
	}
}

func TestNormalizeNoSignal(t *testing.T) {
	got := Normalize("Lugia Neo Genesis 9/111 Holo", "Used")
	if got.Matched || got.Graded {
		t.Fatalf("got %+v, want zero result", got)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	title := "Lugia PSA 10 CGC 9 BGS 9.5 mixed signals"
	first := Normalize(title, "")
	for i := 0; i < 50; i++ {
		if got := Normalize(title, ""); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestMustToken(t *testing.T) {
	if tok, err := MustToken("PSA 10"); err != nil || tok != PSA10 {
		t.Fatalf("MustToken(PSA 10) = %v, %v", tok, err)
	}
	if _, err := MustToken("PSA 11"); err == nil {
		t.Fatalf("expected error for PSA 11")
	}
}
