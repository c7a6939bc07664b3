package env

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// toWide converts s to a NUL-terminated UTF-16 string. Invalid UTF-8 and
// embedded NUL characters cannot be represented and yield ErrEncoding.
func toWide(s string) ([]uint16, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%q is not valid UTF-8: %w", s, ErrEncoding)
	}
	w := make([]uint16, 0, len(s)+1)
	for _, r := range s {
		if r == 0 {
			return nil, fmt.Errorf("%q contains NUL: %w", s, ErrEncoding)
		}
		w = utf16.AppendRune(w, r)
	}
	return append(w, 0), nil
}

// fromWide converts UTF-16 text up to the first NUL back to UTF-8.
// Unpaired surrogates yield ErrEncoding instead of being replaced.
func fromWide(w []uint16) (string, error) {
	b := make([]byte, 0, len(w))
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c == 0 {
			break
		}
		if !utf16.IsSurrogate(rune(c)) {
			b = utf8.AppendRune(b, rune(c))
			continue
		}
		if i+1 >= len(w) {
			return "", fmt.Errorf("truncated surrogate pair at %d: %w", i, ErrEncoding)
		}
		r := utf16.DecodeRune(rune(c), rune(w[i+1]))
		if r == utf8.RuneError {
			return "", fmt.Errorf("unpaired surrogate at %d: %w", i, ErrEncoding)
		}
		b = utf8.AppendRune(b, r)
		i++
	}
	return string(b), nil
}
