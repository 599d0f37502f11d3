package domain

// Offer is a time-bounded percentage discount descriptor. It lives either on
// a whole bag product or on a single shoe size variant; the interpretation is
// identical in both places.
//
// All three fields must be present and positive for the offer to count as
// configured; otherwise it is ignored regardless of the other fields. The
// offer window is the half-open interval
// [OfferStartDate, OfferStartDate + OfferDurationDays): the discount still
// applies on the last day of the window and stops applying the day it ends.
type Offer struct {
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	OfferDurationDays  int     `json:"offerDurationDays,omitempty"`
	OfferStartDate     *Date   `json:"offerStartDate,omitempty"`
}

// IsConfigured reports whether all three offer fields are present and positive.
// A configured offer may still be inactive (window already over).
func (o Offer) IsConfigured() bool {
	return o.DiscountPercentage > 0 && o.OfferDurationDays > 0 && o.OfferStartDate != nil && !o.OfferStartDate.IsZero()
}

// EndDate returns the first day the offer no longer applies.
// Only meaningful when IsConfigured is true.
func (o Offer) EndDate() Date {
	return o.OfferStartDate.AddDays(o.OfferDurationDays)
}
