package report

import "testing"

func TestVerdictColors(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		wantBg string
		wantFg string
	}{
		{"likely authentic", VerdictLikelyAuthentic, "#D1FAE5", "#065F46"},
		{"possibly manipulated", VerdictPossiblyManipulated, "#FEF3C7", "#92400E"},
		{"likely manipulated", VerdictLikelyManipulated, "#FFEDD5", "#9A3412"},
		{"highly suspicious", VerdictHighlySuspicious, "#FEE2E2", "#991B1B"},
		{"unrecognized label falls back", "TOTALLY FINE", "#E5E7EB", "#374151"},
		{"case sensitive lookup", "likely authentic", "#E5E7EB", "#374151"},
		{"empty label falls back", "", "#E5E7EB", "#374151"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerdictColors(tt.label)
			if got.Background != tt.wantBg || got.Foreground != tt.wantFg {
				t.Errorf("VerdictColors(%q) = %+v, want bg=%s fg=%s", tt.label, got, tt.wantBg, tt.wantFg)
			}
		})
	}
}

func TestKnownVerdict(t *testing.T) {
	for _, label := range []string{
		VerdictLikelyAuthentic,
		VerdictPossiblyManipulated,
		VerdictLikelyManipulated,
		VerdictHighlySuspicious,
	} {
		if !KnownVerdict(label) {
			t.Errorf("KnownVerdict(%q) = false, want true", label)
		}
	}
	if KnownVerdict("SOMETHING ELSE") {
		t.Error("KnownVerdict should reject labels outside the fixed set")
	}
}
