package report

// Verdict labels the backend may return for an analyzed image. The lookup is
// an exact string match; anything else falls back to the neutral pair.
const (
	VerdictLikelyAuthentic     = "LIKELY AUTHENTIC"
	VerdictPossiblyManipulated = "POSSIBLY MANIPULATED"
	VerdictLikelyManipulated   = "LIKELY MANIPULATED"
	VerdictHighlySuspicious    = "HIGHLY SUSPICIOUS"
)

// VerdictStyle is a background/foreground color pair for a verdict banner.
type VerdictStyle struct {
	Background string
	Foreground string
}

var verdictStyles = map[string]VerdictStyle{
	VerdictLikelyAuthentic:     {Background: "#D1FAE5", Foreground: "#065F46"},
	VerdictPossiblyManipulated: {Background: "#FEF3C7", Foreground: "#92400E"},
	VerdictLikelyManipulated:   {Background: "#FFEDD5", Foreground: "#9A3412"},
	VerdictHighlySuspicious:    {Background: "#FEE2E2", Foreground: "#991B1B"},
}

// neutralVerdictStyle is used for any verdict string outside the fixed set.
var neutralVerdictStyle = VerdictStyle{Background: "#E5E7EB", Foreground: "#374151"}

// VerdictColors returns the color pair for a verdict label.
func VerdictColors(label string) VerdictStyle {
	if s, ok := verdictStyles[label]; ok {
		return s
	}
	return neutralVerdictStyle
}

// KnownVerdict reports whether the label is one of the four fixed verdicts.
func KnownVerdict(label string) bool {
	_, ok := verdictStyles[label]
	return ok
}
