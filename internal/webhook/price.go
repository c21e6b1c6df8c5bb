package webhook

// Pricing: a base price covers plans up to eight weeks; every further
// week adds a fixed increment up to a cap. The checkout client computes
// the same function; Order() rejects events where the two disagree.
const (
	basePriceCents = 9900
	perWeekCents   = 500
	includedWeeks  = 8
	maxPriceCents  = 19900
)

// PriceCents returns the package price for a plan length in weeks.
func PriceCents(weeks int) int64 {
	price := int64(basePriceCents)
	if weeks > includedWeeks {
		price += int64(weeks-includedWeeks) * perWeekCents
	}
	if price > maxPriceCents {
		price = maxPriceCents
	}
	return price
}
