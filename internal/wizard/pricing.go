package wizard

// PriceBand is the advisory classification of an asking price against the
// price-guide reference. It drives UI copy only; no band blocks submission.
type PriceBand string

const (
	BandUnknown     PriceBand = "unknown"
	BandAboveMarket PriceBand = "above_market"
	BandAtMarket    PriceBand = "at_market"
	BandGoodDeal    PriceBand = "good_deal"
	BandSuspicious  PriceBand = "suspicious"
)

// ClassifyPrice bands a price relative to a reference value. More than 10%
// above reference is above-market; more than 20% below is suspicious; 10-20%
// below is a good deal; anything else is at-market. Without a reference the
// band is unknown.
func ClassifyPrice(price, reference float64) PriceBand {
	if reference <= 0 || price <= 0 {
		return BandUnknown
	}
	delta := (price - reference) / reference
	switch {
	case delta > 0.10:
		return BandAboveMarket
	case delta < -0.20:
		return BandSuspicious
	case delta <= -0.10:
		return BandGoodDeal
	default:
		return BandAtMarket
	}
}
