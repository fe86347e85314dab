package grade

import "testing"

func TestDetectCondition(t *testing.T) {
	tests := []struct {
		texts []string
		want  Condition
		ok    bool
	}{
		{[]string{"Lugia Neo Genesis NM", ""}, NearMint, true},
		{[]string{"Lugia gem mint pack fresh", ""}, GemMint, true},
		{[]string{"Lugia heavily played", ""}, HeavyPlay, true},
		{[]string{"Lugia", "Used - Lightly played"}, LightPlay, true},
		{[]string{"Lugia damaged back", ""}, Damaged, true},
		{[]string{"Lugia holo swirl", "Used"}, "", false},
	}
	for _, tt := range tests {
		got, ok := DetectCondition(tt.texts...)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("DetectCondition(%q) = %q,%v, want %q,%v", tt.texts, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDetectConditionTitleWinsOverCondition(t *testing.T) {
	got, ok := DetectCondition("Lugia near mint", "Used - Heavily played")
	if !ok || got != NearMint {
		t.Fatalf("got %q,%v, want Near Mint", got, ok)
	}
}
