package api

// Response types for the TruthLens analysis backend. Every field is optional
// on the wire; Normalize fills documented defaults at the boundary so the
// renderers never perform presence checks.

// AnalysisResponse is the result of POST /api/analyze.
type AnalysisResponse struct {
	AnalysisID   string  `json:"analysis_id"`
	Filename     string  `json:"filename"`
	FileSize     int64   `json:"file_size"`
	AnalysisTime float64 `json:"analysis_time"`
	Timestamp    string  `json:"timestamp"`

	Risk    RiskReport `json:"risk"`
	Verdict Verdict    `json:"verdict"`

	EXIF        AnalyzerResult `json:"exif"`
	ELA         AnalyzerResult `json:"ela"`
	Tampering   AnalyzerResult `json:"tampering"`
	OCR         AnalyzerResult `json:"ocr"`
	AIDetection AnalyzerResult `json:"ai_detection"`

	OriginalImage        string `json:"original_image"`
	ELAImage             string `json:"ela_image"`
	TamperAnnotatedImage string `json:"tamper_annotated_image"`
	NoiseMapImage        string `json:"noise_map_image"`

	// Attached when OCR finds enough text to run the claim verifier.
	TextVerification *TextVerificationResponse `json:"text_verification"`
}

// RiskReport aggregates the per-analyzer scores into one weighted result.
type RiskReport struct {
	OverallScore    float64          `json:"overall_score"`
	RiskLevel       string           `json:"risk_level"`
	RiskEmoji       string           `json:"risk_emoji"`
	RiskDescription string           `json:"risk_description"`
	Breakdown       []BreakdownEntry `json:"breakdown"`
	AllFlags        []string         `json:"all_flags"`
}

// BreakdownEntry is one analyzer's contribution to the overall score.
type BreakdownEntry struct {
	Analyzer      string  `json:"analyzer"`
	RawScore      float64 `json:"raw_score"`
	Weight        string  `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
	Level         string  `json:"level"`
}

// AnalyzerResult is the common shape shared by all five analyzers.
type AnalyzerResult struct {
	RiskScore float64        `json:"risk_score"`
	Summary   string         `json:"summary"`
	Flags     []string       `json:"flags"`
	Metadata  map[string]any `json:"metadata"`
}

// Verdict is the LLM-generated judgment for an image.
type Verdict struct {
	Verdict    string `json:"verdict"`
	AIAnalysis string `json:"ai_analysis"`
}

// TextVerificationResponse is the result of POST /api/verify/text.
type TextVerificationResponse struct {
	TruthScore  float64  `json:"truth_score"`
	Verdict     string   `json:"verdict"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Claims      []string `json:"claims"`
	Sources     []Source `json:"sources"`
	RiskLevel   string   `json:"risk_level"`
}

// Source is one scored web source backing a text verification.
type Source struct {
	Domain           string  `json:"domain"`
	Category         string  `json:"category"`
	Href             string  `json:"href"`
	Title            string  `json:"title"`
	Body             string  `json:"body"`
	CredibilityScore float64 `json:"credibility_score"`
}

// HealthResponse is the result of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

const defaultSummary = "N/A"

// Normalize clamps scores into [0,100] and substitutes defaults for absent
// fields so downstream rendering is total.
func (r *AnalysisResponse) Normalize() {
	if r.Filename == "" {
		r.Filename = "unknown"
	}
	r.Risk.normalize()
	r.Verdict.normalize()
	r.EXIF.normalize()
	r.ELA.normalize()
	r.Tampering.normalize()
	r.OCR.normalize()
	r.AIDetection.normalize()
	if r.TextVerification != nil {
		r.TextVerification.Normalize()
	}
}

func (r *RiskReport) normalize() {
	r.OverallScore = clampScore(r.OverallScore)
	if r.RiskDescription == "" {
		r.RiskDescription = defaultSummary
	}
	if r.Breakdown == nil {
		r.Breakdown = []BreakdownEntry{}
	}
	for i := range r.Breakdown {
		r.Breakdown[i].RawScore = clampScore(r.Breakdown[i].RawScore)
		if r.Breakdown[i].Analyzer == "" {
			r.Breakdown[i].Analyzer = defaultSummary
		}
	}
	if r.AllFlags == nil {
		r.AllFlags = []string{}
	}
}

func (v *Verdict) normalize() {
	if v.AIAnalysis == "" {
		v.AIAnalysis = defaultSummary
	}
}

func (a *AnalyzerResult) normalize() {
	a.RiskScore = clampScore(a.RiskScore)
	if a.Summary == "" {
		a.Summary = defaultSummary
	}
	if a.Flags == nil {
		a.Flags = []string{}
	}
}

// Normalize fills defaults on a text verification result.
func (t *TextVerificationResponse) Normalize() {
	t.TruthScore = clampScore(t.TruthScore)
	t.Confidence = clampScore(t.Confidence)
	if t.Verdict == "" {
		t.Verdict = "UNVERIFIED"
	}
	if t.Explanation == "" {
		t.Explanation = defaultSummary
	}
	if t.Claims == nil {
		t.Claims = []string{}
	}
	if t.Sources == nil {
		t.Sources = []Source{}
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
