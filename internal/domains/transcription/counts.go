package transcription

import (
	"strings"
	"unicode/utf8"
)

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountChars counts characters (runes, not bytes) in text.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
