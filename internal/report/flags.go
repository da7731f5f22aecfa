package report

import "strings"

// FlagClass classifies an analyzer flag string by the marker glyph the
// backend embeds at the start of the text. The glyph is the only signal
// carried in the flag, so the mapping must stay in sync with the backend's
// emoji conventions.
type FlagClass int

const (
	FlagInfo FlagClass = iota
	FlagDanger
	FlagWarning
	FlagSuccess
)

func (c FlagClass) String() string {
	switch c {
	case FlagDanger:
		return "danger"
	case FlagWarning:
		return "warning"
	case FlagSuccess:
		return "success"
	default:
		return "info"
	}
}

// Color returns the accent color hex for a flag class.
func (c FlagClass) Color() string {
	switch c {
	case FlagDanger:
		return "#EF4444"
	case FlagWarning:
		return "#F59E0B"
	case FlagSuccess:
		return "#10B981"
	default:
		return "#60A5FA"
	}
}

// ClassifyFlag inspects the leading glyph of a flag string.
func ClassifyFlag(flag string) FlagClass {
	s := strings.TrimSpace(flag)
	switch {
	case strings.HasPrefix(s, "🔴"):
		return FlagDanger
	case strings.HasPrefix(s, "🟡"):
		return FlagWarning
	case strings.HasPrefix(s, "✅"):
		return FlagSuccess
	default:
		return FlagInfo
	}
}
