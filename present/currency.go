package present

import (
	"math"
	"strconv"
	"strings"
)

// GroupIndian renders an amount with Indian digit grouping and zero
// decimals: the last three digits form one group, every two digits above
// that form another (4476000 -> "44,76,000"). The amount is rounded to
// the nearest rupee.
func GroupIndian(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatINR prefixes the grouped amount with the rupee sign.
func FormatINR(amount float64) string {
	return "₹" + GroupIndian(amount)
}

// FormatPercent renders a rate as a percentage string without trailing
// zeros ("6%", "6.5%").
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// FormatYears renders a year count ("10 years", "1 year").
func FormatYears(years int) string {
	if years == 1 {
		return "1 year"
	}
	return strconv.Itoa(years) + " years"
}
