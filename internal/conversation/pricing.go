package conversation

import (
	"math"
	"regexp"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const perHeadBase = 180

var (
	// Surcharge detection scans the concatenated date+timeSlot text. The
	// fraction-like evening tokens mirror slot strings seen in real guest
	// messages with mangled dashes; known heuristic limitation ("fri"
	// inside an unrelated token also matches).
	weekendRE = regexp.MustCompile(`(sat|sun|weekend|fri)`)
	eveningRE = regexp.MustCompile(`(evening|night|pm|6-10|7-11|6?10|7?11)`)

	inr = message.NewPrinter(language.MustParse("en-IN"))
)

// estimatePriceRange computes the quoted range from a per-head base rate
// with multiplicative weekend and evening surcharges. Heuristic only; there
// is no external rate table.
func estimatePriceRange(d BookingDetails) string {
	guests := d.Guests
	if guests == 0 {
		guests = 50
	}
	if guests < 1 {
		guests = 1
	}
	if guests > 800 {
		guests = 800
	}
	base := float64(perHeadBase * guests)

	t := normalize(d.Date + " " + d.TimeSlot)
	if weekendRE.MatchString(t) {
		base *= 1.15
	}
	if eveningRE.MatchString(t) {
		base *= 1.10
	}

	min := int(math.Round(base*0.90/100)) * 100
	max := int(math.Round(base*1.15/100)) * 100
	return inr.Sprintf("₹%d–₹%d", min, max)
}
