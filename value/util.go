package value

import (
	"errors"
	"strconv"
)

var (
	ErrNumberSyntax = errors.New("invalid number syntax")
	ErrNumberRange  = errors.New("number out of range")
)

func ifstr(v bool, t, f string) string {
	if v {
		return t
	}
	return f
}

func PanicIf(v bool, t string) {
	if v {
		panic(t)
	}
}

// ParseNumber reads a decimal floating point literal:
// [+-] digits [. digits] [e [+-] digits], where one of the digit runs around
// the dot may be empty. Spellings strconv would also take, like "inf", "0x10"
// or "1_000", are rejected with ErrNumberSyntax. A well formed literal beyond
// the float64 range fails with ErrNumberRange.
func ParseNumber(text string) (Number, error) {
	i, digits := 0, 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for ; i < len(text) && isDigit(text[i]); i++ {
		digits++
	}
	if i < len(text) && text[i] == '.' {
		i++
		for ; i < len(text) && isDigit(text[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, ErrNumberSyntax
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(text) && isDigit(text[i]); i++ {
			exp++
		}
		if exp == 0 {
			return 0, ErrNumberSyntax
		}
	}
	if i != len(text) {
		return 0, ErrNumberSyntax
	}
	v, err := strconv.ParseFloat(text, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrNumberRange
	}
	if err != nil {
		return 0, ErrNumberSyntax
	}
	return Number(v), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
