package logutil

import "unicode/utf8"

// TruncateForLog shortens s to at most maxLen bytes, appending "..." when cut.
// The cut never splits a UTF-8 sequence.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// MaskToken keeps the first visible characters of an opaque token so log
// lines can be correlated without recording the full value.
func MaskToken(token string, visible int) string {
	if token == "" {
		return ""
	}
	if visible <= 0 || len(token) <= visible {
		return "***"
	}
	return TruncateForLog(token, visible) + "***"
}
