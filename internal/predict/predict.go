// Package predict implements the median edge detector predictor and its
// neighborhood plumbing. The minimal left-neighbor predictor needs no state
// beyond the previous sample and lives in the frame drivers.
package predict

// Neighbors returns the reconstructed samples around (x, y) in a row-major
// plane of the given width:
//
//	c b d
//	a ?
//
// Out-of-frame positions read as 0: a and c on the first column, b, c and d
// on the first line. On the last column d falls back to b.
func Neighbors(plane []byte, width, x, y int) (a, b, c, d uint8) {
	row := y * width
	if x > 0 {
		a = plane[row+x-1]
	}
	if y > 0 {
		up := row - width
		b = plane[up+x]
		if x > 0 {
			c = plane[up+x-1]
		}
		if x < width-1 {
			d = plane[up+x+1]
		} else {
			d = b
		}
	}
	return a, b, c, d
}

// Med returns the median edge detector prediction for a pixel with left
// neighbor a, upper neighbor b and upper-left neighbor c. It picks the
// min/max of a and b when c indicates a horizontal or vertical edge and the
// planar extrapolation a+b-c otherwise; the extrapolation is clamped to the
// sample range by the min/max cases themselves.
func Med(a, b, c uint8) uint8 {
	mn, mx := a, b
	if mn > mx {
		mn, mx = mx, mn
	}
	switch {
	case c >= mx:
		return mn
	case c <= mn:
		return mx
	}
	p := int(a) + int(b) - int(c)
	// Only c strictly between a and b reaches this point, which keeps a+b-c
	// inside [min(a,b), max(a,b)] already; the clamp is purely defensive.
	if p < 0 {
		return 0
	}
	if p > 255 {
		return 255
	}
	return uint8(p)
}

// Flat reports whether the local gradients around a pixel are all within
// near, the trigger for run mode.
func Flat(a, b, c, d uint8, near int) bool {
	return absDiff(d, b) <= near && absDiff(b, c) <= near && absDiff(c, a) <= near
}

func absDiff(x, y uint8) int {
	if x > y {
		return int(x - y)
	}
	return int(y - x)
}
