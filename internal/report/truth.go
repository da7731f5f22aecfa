package report

import "strings"

// TruthClass is the three-way styling bucket for a text-verification score.
type TruthClass int

const (
	TruthMixed TruthClass = iota // misleading / unverified
	TruthTrue
	TruthFalse
)

func (c TruthClass) String() string {
	switch c {
	case TruthTrue:
		return "true"
	case TruthFalse:
		return "false"
	default:
		return "mixed"
	}
}

// Color returns the accent color hex for a truth class.
func (c TruthClass) Color() string {
	switch c {
	case TruthTrue:
		return "#10B981"
	case TruthFalse:
		return "#EF4444"
	default:
		return "#F59E0B"
	}
}

// ClassifyTruthScore buckets a 0-100 truth score: above 80 is true, below
// 40 is false, everything between is misleading/unverified.
func ClassifyTruthScore(score float64) TruthClass {
	switch {
	case score > 80:
		return TruthTrue
	case score < 40:
		return TruthFalse
	default:
		return TruthMixed
	}
}

// CategorySlug converts a source category string into a style variant key:
// lowercased with spaces and slashes replaced by dashes.
func CategorySlug(category string) string {
	s := strings.ToLower(strings.TrimSpace(category))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	if s == "" {
		return "unknown"
	}
	return s
}

// CategoryColor maps a source category slug to its card accent color. The
// backend emits "Trusted Source", "Questionable Source", "AI Model" and
// "Unknown"; slugs outside that set get the neutral accent.
func CategoryColor(slug string) string {
	switch slug {
	case "trusted-source":
		return "#10B981"
	case "questionable-source":
		return "#EF4444"
	case "ai-model":
		return "#A855F7"
	default:
		return "#60A5FA"
	}
}
