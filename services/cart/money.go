package cart

import "fmt"

// Total is a cart total in minor units.
type Total struct {
	Cents int64 `json:"total_cents"`
}

func (t Total) String() string {
	return FormatCents(t.Cents)
}

// FormatCents renders minor units as a decimal string, e.g. 2500 -> "25.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
