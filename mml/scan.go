package mml

import (
	"strconv"
	"strings"
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// skipSpace returns the position of the first non-space byte at or after
// pos.
func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

// skipSign skips a single leading '+' or '-'.
func skipSign(s string, pos int) int {
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}
	return pos
}

// scanInt reads a base 10 integer at pos the way strtol does: leading
// space and a sign are allowed. When no digits are found end == pos. A
// value that does not fit 32 bits returns an error and the end of the
// digit run.
func scanInt(s string, pos int) (n int, end int, err error) {
	start := skipSpace(s, pos)
	digits := skipSign(s, start)
	end = digits
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return 0, pos, nil
	}

	v, err := strconv.ParseInt(s[start:end], 10, 32)
	if err != nil {
		return 0, end, err
	}
	return int(v), end, nil
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (toLower(c) >= 'a' && toLower(c) <= 'f')
}

// scanDigits returns the end of the run of digits at pos and how many
// digits it holds, counting an optional fraction after a single '.'.
func scanDigits(s string, pos int, digit func(byte) bool) (end, n int) {
	end = pos
	for end < len(s) && digit(s[end]) {
		end++
		n++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && digit(s[frac]) {
			frac++
			n++
		}
		if n > 0 {
			end = frac
		}
	}
	return end, n
}

// scanExponent extends end over an exponent introduced by one of marks,
// when digits follow it.
func scanExponent(s string, end int, marks string) int {
	if end >= len(s) || !strings.ContainsRune(marks, rune(s[end])) {
		return end
	}
	exp := skipSign(s, end+1)
	digits := exp
	for exp < len(s) && isDigit(s[exp]) {
		exp++
	}
	if exp > digits {
		return exp
	}
	return end
}

// scanHexFloat reads a hexadecimal float such as 0x10 or 0x1.8p3 at pos,
// which must point just past the sign. found is false when there is no
// 0x prefix followed by a hex digit; "0x" alone is read as 0 by strtod.
func scanHexFloat(s string, start, pos int) (f float64, end int, found bool, err error) {
	if pos+1 >= len(s) || s[pos] != '0' || toLower(s[pos+1]) != 'x' {
		return 0, pos, false, nil
	}
	end, n := scanDigits(s, pos+2, isHexDigit)
	if n == 0 {
		return 0, pos, false, nil
	}
	withExp := scanExponent(s, end, "pP")

	lit := s[start:withExp]
	if withExp == end {
		lit += "p0"
	}
	f, err = strconv.ParseFloat(lit, 64)
	return f, withExp, true, err
}

// scanFloat reads a number the way strtod does: decimal with an optional
// fraction and exponent, or hexadecimal with a 0x prefix. Infinity and NaN
// are not accepted.
func scanFloat(s string, pos int) (f float64, end int, ok bool) {
	start := skipSpace(s, pos)
	end = skipSign(s, start)

	if f, hexEnd, found, err := scanHexFloat(s, start, end); found {
		if err != nil {
			return 0, pos, false
		}
		return f, hexEnd, true
	}

	end, mantissa := scanDigits(s, end, isDigit)
	if mantissa == 0 {
		return 0, pos, false
	}
	end = scanExponent(s, end, "eE")

	f, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		return 0, pos, false
	}
	return f, end, true
}
