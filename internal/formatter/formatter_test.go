package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/truthlens/truthlens/internal/api"
)

func sampleAnalysis() *api.AnalysisResponse {
	r := &api.AnalysisResponse{
		AnalysisID:   "abc123",
		Filename:     "photo.jpg",
		FileSize:     2048,
		AnalysisTime: 1.7,
	}
	r.Risk.OverallScore = 63
	r.Risk.RiskLevel = "high"
	r.Risk.RiskDescription = "Multiple indicators of manipulation"
	r.Risk.Breakdown = []api.BreakdownEntry{
		{Analyzer: "ELA", RawScore: 70, Level: "high"},
	}
	r.Risk.AllFlags = []string{"🔴 Cloned regions detected"}
	r.Verdict.Verdict = "LIKELY MANIPULATED"
	r.Verdict.AIAnalysis = "The image shows signs of editing."
	r.OriginalImage = "data:image/jpeg;base64,AAAA"
	r.Normalize()
	return r
}

func sampleVerification() *api.TextVerificationResponse {
	v := &api.TextVerificationResponse{
		TruthScore:  85,
		Verdict:     "TRUE",
		Confidence:  90,
		Explanation: "Corroborated by multiple sources.",
		Claims:      []string{"claim one"},
		Sources: []api.Source{
			{Domain: "example.org", Category: "Trusted Source", Title: "An article", Href: "https://example.org/a"},
		},
	}
	v.Normalize()
	return v
}

func TestNewDispatch(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"xml", true},
	}

	for _, tt := range tests {
		_, err := New(tt.format, false)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestJSONFormatterOmitsImagePayloads(t *testing.T) {
	f := NewJSON()
	out, err := f.FormatAnalysis(sampleAnalysis())
	if err != nil {
		t.Fatalf("FormatAnalysis() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if strings.Contains(string(out), "base64,AAAA") {
		t.Error("JSON output must not carry the base64 image payload")
	}

	evidence, ok := decoded["evidence"].(map[string]any)
	if !ok {
		t.Fatal("JSON output missing the evidence presence map")
	}
	if evidence["original"] != true {
		t.Error("evidence.original should be true when the backend sent the image")
	}
	if evidence["noise_map"] != false {
		t.Error("evidence.noise_map should be false when absent")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdown()
	out, err := f.FormatAnalysis(sampleAnalysis())
	if err != nil {
		t.Fatalf("FormatAnalysis() error: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Image Forensics Report",
		"| File | photo.jpg |",
		"**HIGH RISK** - score 63/100",
		"| ELA | 70 | high |",
		"### Verdict",
		"[danger] 🔴 Cloned regions detected",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownVerification(t *testing.T) {
	f := NewMarkdown()
	out, err := f.FormatVerification(sampleVerification())
	if err != nil {
		t.Fatalf("FormatVerification() error: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Claim Verification Report",
		"**TRUE** (true) - truth score 85/100",
		"**example.org** (Trusted Source)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestTerminalFormatter(t *testing.T) {
	f := NewTerminal(false)
	out, err := f.FormatAnalysis(sampleAnalysis())
	if err != nil {
		t.Fatalf("FormatAnalysis() error: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"TruthLens Image Analysis",
		"photo.jpg",
		"Risk: HIGH (63/100)",
		"Verdict: LIKELY MANIPULATED",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestTerminalVerificationNoSources(t *testing.T) {
	v := sampleVerification()
	v.Sources = []api.Source{}

	f := NewTerminal(false)
	out, err := f.FormatVerification(v)
	if err != nil {
		t.Fatalf("FormatVerification() error: %v", err)
	}
	if !strings.Contains(string(out), "Sources: none found") {
		t.Error("terminal output should state when no sources were found")
	}
}
