package report

import "testing"

func TestClassifyFlag(t *testing.T) {
	tests := []struct {
		name string
		flag string
		want FlagClass
	}{
		{"danger glyph", "🔴 EXIF timestamps inconsistent", FlagDanger},
		{"warning glyph", "🟡 Compression artifacts near edges", FlagWarning},
		{"success glyph", "✅ No tampering regions detected", FlagSuccess},
		{"no glyph", "OCR extracted 42 words", FlagInfo},
		{"leading whitespace", "  🔴 GPS location stripped", FlagDanger},
		{"glyph mid-string is not a marker", "score was 🔴 red", FlagInfo},
		{"empty", "", FlagInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFlag(tt.flag); got != tt.want {
				t.Errorf("ClassifyFlag(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestFlagClassString(t *testing.T) {
	tests := []struct {
		class FlagClass
		want  string
	}{
		{FlagDanger, "danger"},
		{FlagWarning, "warning"},
		{FlagSuccess, "success"},
		{FlagInfo, "info"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("FlagClass(%d).String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}
