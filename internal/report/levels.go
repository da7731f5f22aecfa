package report

import "strings"

// RiskLevel is the aggregated risk classification reported by the backend.
// Unrecognized strings map to RiskUnknown so fallback styling is explicit
// rather than incidental.
type RiskLevel int

const (
	RiskUnknown RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

// ParseRiskLevel normalizes a backend risk level string. Matching is
// case-insensitive; anything outside the four known levels is RiskUnknown.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow
	case "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	case "critical":
		return RiskCritical
	default:
		return RiskUnknown
	}
}

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Color returns the accent color hex for a risk level. The neutral accent
// is used for unrecognized levels.
func (l RiskLevel) Color() string {
	switch l {
	case RiskLow:
		return "#10B981"
	case RiskMedium:
		return "#F59E0B"
	case RiskHigh:
		return "#F97316"
	case RiskCritical:
		return "#EF4444"
	default:
		return "#94A3B8"
	}
}

// EmojiKey returns the emoji table key for a risk level.
func (l RiskLevel) EmojiKey() string {
	switch l {
	case RiskLow:
		return "risk_low"
	case RiskMedium:
		return "risk_med"
	case RiskHigh:
		return "risk_high"
	case RiskCritical:
		return "risk_crit"
	default:
		return "info"
	}
}
