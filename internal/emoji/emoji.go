package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"success":   {"✅", "[OK]"},
	"camera":    {"📷", "[IMG]"},
	"text":      {"📝", "[TXT]"},
	"shield":    {"🛡️", "[TL]"},
	"search":    {"🔍", "[SCAN]"},
	"upload":    {"📤", "[UP]"},
	"metadata":  {"📋", "[META]"},
	"heatmap":   {"🔥", "[ELA]"},
	"tamper":    {"✂️", "[TMP]"},
	"brain":     {"🧠", "[AI]"},
	"verdict":   {"⚖️", "[VER]"},
	"gauge":     {"🎯", "[SCORE]"},
	"link":      {"🔗", "[SRC]"},
	"clock":     {"⏱️", "[TIME]"},
	"pending":   {"○", "( )"},
	"active":    {"◉", "(>)"},
	"done":      {"✅", "(x)"},
	"risk_low":  {"🟢", "[LOW]"},
	"risk_med":  {"🟡", "[MED]"},
	"risk_high": {"🟠", "[HIGH]"},
	"risk_crit": {"🔴", "[CRIT]"},
	"watch":     {"👁️", "[WATCH]"},
	"door":      {"🚪", "[EXIT]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
