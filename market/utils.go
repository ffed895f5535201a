package market

import "math"

// Epsilon is the tolerance used for "is this quantity zero" checks on fills
// and remaining order sizes. Exact float comparison would leave orders stuck
// open after rounding; 1e-9 is far below any realistic contract size.
const Epsilon = 1e-9

func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}
