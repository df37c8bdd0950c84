package series

import (
	"errors"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Floats yields every token of seq that parses as a float, in order.
// Tokens that fail to parse, and NaN, are skipped.
func Floats(seq iter.Seq[string]) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for tok := range seq {
			v, ok := parseFloat(tok)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// NonBlank yields each line trimmed of surrounding whitespace, skipping empty ones.
func NonBlank(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, raw := range lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// parseFloat accepts decimal literals, inf and infinity. Hex literals are
// refused, underscores are allowed only between digits, and literals too
// large for a float64 become ±Inf.
func parseFloat(tok string) (float64, bool) {
	digits := strings.TrimLeft(tok, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	if strings.Contains(tok, "_") {
		if !digitUnderscores(tok) {
			return 0, false
		}
		tok = strings.ReplaceAll(tok, "_", "")
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0)) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func digitUnderscores(tok string) bool {
	for i := range len(tok) {
		if tok[i] != '_' {
			continue
		}
		if i == 0 || i == len(tok)-1 || !isDigit(tok[i-1]) || !isDigit(tok[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
