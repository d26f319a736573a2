package common

import (
	"strings"
	"unicode/utf8"
)

// WipeByteArray overwrites the contents of b with zeros. Used for passwords
// read from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Initials returns the first two runes of the user's name as shown in the
// navigation header, or an empty string for an empty name.
func Initials(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if utf8.RuneCountInString(name) <= 2 {
		return name
	}
	r := []rune(name)
	return string(r[:2])
}
