package report

import "testing"

func TestClassifyTruthScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  TruthClass
	}{
		{"clearly true", 85, TruthTrue},
		{"clearly false", 30, TruthFalse},
		{"middle ground", 55, TruthMixed},
		{"boundary 80 is mixed", 80, TruthMixed},
		{"boundary 40 is mixed", 40, TruthMixed},
		{"just above 80", 80.1, TruthTrue},
		{"just below 40", 39.9, TruthFalse},
		{"zero", 0, TruthFalse},
		{"hundred", 100, TruthTrue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTruthScore(tt.score); got != tt.want {
				t.Errorf("ClassifyTruthScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Trusted Source", "trusted-source"},
		{"Questionable Source", "questionable-source"},
		{"AI Model", "ai-model"},
		{"Unknown", "unknown"},
		{"News/Media Outlet", "news-media-outlet"},
		{"", "unknown"},
		{"  Trusted Source  ", "trusted-source"},
	}

	for _, tt := range tests {
		if got := CategorySlug(tt.input); got != tt.want {
			t.Errorf("CategorySlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategoryColor(t *testing.T) {
	if CategoryColor("trusted-source") == CategoryColor("questionable-source") {
		t.Error("trusted and questionable sources must not share a color")
	}
	if CategoryColor("made-up-category") != CategoryColor("unknown") {
		t.Error("unrecognized slugs should use the neutral color")
	}
}
