package pricing

import "math"

const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometers between two
// points given as (lat, lng) degree pairs, via the Haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// FeePolicy holds the delivery-fee constants.
type FeePolicy struct {
	MinimumFee  float64 // floor for any distance-based fee
	PerKmRate   float64
	FlatDefault float64 // used when no coordinate was chosen
}

// DefaultPolicy matches the production configuration.
var DefaultPolicy = FeePolicy{MinimumFee: 3, PerKmRate: 2, FlatDefault: 5}

// Fee computes the delivery fee for a distance in kilometers:
// max(MinimumFee, round(km * PerKmRate)).
func (p FeePolicy) Fee(km float64) float64 {
	fee := math.Round(km * p.PerKmRate)
	if fee < p.MinimumFee {
		return p.MinimumFee
	}
	return fee
}

// FeeBetween computes the fee for a delivery from (lat1, lng1) to (lat2, lng2).
func (p FeePolicy) FeeBetween(lat1, lng1, lat2, lng2 float64) float64 {
	return p.Fee(Distance(lat1, lng1, lat2, lng2))
}
