package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ZeroBRL is the display form of a zero amount.
const ZeroBRL = "R$ 0,00"

// maxAmount is the largest magnitude whose cents fit in an int64.
const maxAmount = math.MaxInt64 / 100

// ParseBRL parses an amount written as a plain decimal ("1234.56", "1000")
// or in Brazilian notation ("R$ 1.234,56", "1234,56").
//
// A leading "R$" and surrounding whitespace are stripped. When a comma and
// at least one dot are present, dots are thousands separators and the comma
// is the decimal point. A lone comma is the decimal point.
func ParseBRL(s string) (float64, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "R$")
	v = strings.TrimSpace(v)

	switch {
	case strings.Contains(v, ",") && strings.Contains(v, "."):
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case strings.Contains(v, ","):
		v = strings.Replace(v, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxAmount {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	return f, nil
}

// FormatBRL renders v as "R$ 1.234,56", rounded to cents.
func FormatBRL(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("R$ %s%s,%02d", sign, b.String(), cents%100)
}

// HalfBRL returns half of amount in display form. Unparseable input yields
// ZeroBRL instead of an error.
func HalfBRL(amount string) string {
	v, err := ParseBRL(amount)
	if err != nil {
		return ZeroBRL
	}
	return FormatBRL(v / 2)
}
