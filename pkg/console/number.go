package console

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way the console renders numbers: the shortest
// round-tripping digits, plain notation from 1e-6 up to 1e21 and exponent
// notation ("1e+21", "1e-7") outside that range.
func FormatNumber(f float64) string {
	return formatNumber(f, 64)
}

func formatNumber(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
	digits := strings.Replace(mantissa, ".", "", 1)

	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return sign + strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	// point is the position of the decimal point relative to digits.
	point := exp + 1
	count := len(digits)

	switch {
	case count <= point && point <= 21:
		return sign + digits + strings.Repeat("0", point-count)
	case 0 < point && point <= 21:
		return sign + digits[:point] + "." + digits[point:]
	case -6 < point && point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	}

	var builder strings.Builder

	builder.WriteString(sign)
	builder.WriteString(digits[:1])

	if count > 1 {
		builder.WriteByte('.')
		builder.WriteString(digits[1:])
	}

	builder.WriteByte('e')

	if exp >= 0 {
		builder.WriteByte('+')
	}

	builder.WriteString(strconv.Itoa(exp))

	return builder.String()
}
