package money

import "math"

// Round snaps an amount to cent precision. Every balance mutation in the
// game core goes through this so repeated float arithmetic cannot drift.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Add returns the rounded sum of two amounts.
func Add(a, b float64) float64 {
	return Round(a + b)
}

// Sub returns the rounded difference of two amounts.
func Sub(a, b float64) float64 {
	return Round(a - b)
}
