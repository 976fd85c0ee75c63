package segment

import (
	"errors"
	"strconv"
	"strings"
)

// ErrSyntax is returned by ParseValue for text that is not a number.
var ErrSyntax = errors.New("segment: value is not a number")

// ParseValue reads a value sent as text, for example an MQTT payload or a
// command line argument. It accepts decimal numbers ("7", "12"), a single
// hex digit ("a", "F") and 0x/0b/0o prefixed numbers ("0xb").
//
// The result is not range checked: numbers without a glyph blank the
// display when passed to Set.
func ParseValue(b []byte) (int, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, ErrSyntax
	}
	if len(s) == 1 {
		if v, ok := hexDigit(s[0]); ok {
			return v, nil
		}
		return 0, ErrSyntax
	}
	base := 10
	if hasBasePrefix(s) {
		base = 0
	}
	v, err := strconv.ParseInt(s, base, 0)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			// Out of int range is still a number, just one without a glyph.
			return -1, nil
		}
		return 0, ErrSyntax
	}
	return int(v), nil
}

// hasBasePrefix reports whether s starts with 0x, 0b or 0o. Other leading
// zeros are read as decimal, so "08" is 8.
func hasBasePrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'b', 'B', 'o', 'O':
		return true
	}
	return false
}

func hexDigit(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
