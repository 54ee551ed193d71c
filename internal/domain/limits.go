package domain

// Bounds accepted at the input boundary.
const (
	MinCurrencyID int64 = 1
	MaxCurrencyID int64 = 100_000

	MinRate int64 = 1
	MaxRate int64 = 1_000_000_000

	MinQuantity int64 = -1_000_000_000
	MaxQuantity int64 = 1_000_000_000

	// MaxOrders is the number of orders admitted in a single run.
	MaxOrders = 1_000_000
)

// ValidCurrencyID reports whether id lies in [MinCurrencyID, MaxCurrencyID].
func ValidCurrencyID(id int64) bool {
	return id >= MinCurrencyID && id <= MaxCurrencyID
}

// ValidRate reports whether rate lies in [MinRate, MaxRate].
func ValidRate(rate int64) bool {
	return rate >= MinRate && rate <= MaxRate
}

// ValidQuantity reports whether q lies in [MinQuantity, MaxQuantity].
// Sign is not checked here.
func ValidQuantity(q int64) bool {
	return q >= MinQuantity && q <= MaxQuantity
}
