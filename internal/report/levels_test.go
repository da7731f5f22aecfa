package report

import "testing"

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RiskLevel
	}{
		{"lowercase low", "low", RiskLow},
		{"uppercase medium", "MEDIUM", RiskMedium},
		{"mixed case high", "High", RiskHigh},
		{"critical with whitespace", "  critical  ", RiskCritical},
		{"unknown string", "severe", RiskUnknown},
		{"empty string", "", RiskUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRiskLevel(tt.input); got != tt.want {
				t.Errorf("ParseRiskLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRiskLevelString(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{RiskLow, "LOW"},
		{RiskMedium, "MEDIUM"},
		{RiskHigh, "HIGH"},
		{RiskCritical, "CRITICAL"},
		{RiskUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("RiskLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestRiskLevelColorFallback(t *testing.T) {
	// every recognized level must have a distinct accent; unrecognized
	// levels share the neutral one
	seen := make(map[string]RiskLevel)
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical} {
		c := level.Color()
		if prev, dup := seen[c]; dup {
			t.Errorf("levels %v and %v share color %s", prev, level, c)
		}
		seen[c] = level
	}

	if RiskUnknown.Color() != "#94A3B8" {
		t.Errorf("RiskUnknown.Color() = %s, want neutral #94A3B8", RiskUnknown.Color())
	}
	if RiskLevel(99).Color() != RiskUnknown.Color() {
		t.Error("out-of-range level should use the neutral color")
	}
}
