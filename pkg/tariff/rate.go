package tariff

import (
	"strconv"
	"strings"
)

// ParseRate normalizes a raw "General Rate of Duty" value into an
// ad-valorem fraction. The grammar, in order:
//
//	"Free" (any case)      -> 0
//	specific duty ("¢")    -> 0 (per-unit duties are not value-proportional
//	                            and are priced at zero here)
//	"5%" / "12.5%"         -> numeral / 100
//	plain numeral          -> taken as the fraction verbatim
//	anything else          -> 0
//
// The plain-numeral case is intentionally NOT divided by 100; schedule
// files that carry pre-parsed fractions rely on it. Unparseable input
// falls back to zero rather than failing, so a malformed schedule line
// can never abort a calculation.
func ParseRate(raw string) float64 {
	rate := strings.TrimSpace(raw)

	if strings.EqualFold(rate, "free") {
		return 0.0
	}

	// "0.5¢/kg" and friends. Older exports mangle the cent sign into
	// "Â¢", match both.
	if strings.Contains(rate, "¢") || strings.Contains(rate, "Â¢") {
		return 0.0
	}

	if strings.Contains(rate, "%") {
		numeral := strings.TrimSpace(strings.TrimRight(rate, "%"))
		v, err := strconv.ParseFloat(numeral, 64)
		if err != nil {
			return 0.0
		}
		return v / 100.0
	}

	v, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0.0
	}
	return v
}
