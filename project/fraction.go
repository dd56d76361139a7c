package project

import (
	"strconv"
	"strings"

	"github.com/ansel1/merry/v2"
)

// parseFraction parses numeric attributes that appear either as a plain
// integer ("45") or as a rational ("1032/1"). Only the numerator matters,
// the schema always writes a denominator of 1. An absent attribute is 0.
func parseFraction(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, merry.Wrap(ErrMalformedValue, merry.AppendMessagef("%q", raw))
	}
	return n, nil
}
