package invoice

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses user-entered numeric text. Empty, malformed, non-finite and
// negative input yields 0 so the document always stays computable.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}

	v := d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}
