package input

import "math"

// scrollAccumulator turns fractional wheel deltas into whole steps.
type scrollAccumulator struct {
	x, y float64
}

func (a *scrollAccumulator) add(dx, dy float64) (int, int) {
	a.x += dx
	a.y += dy
	wx := math.Trunc(a.x)
	wy := math.Trunc(a.y)
	a.x -= wx
	a.y -= wy
	return int(wx), int(wy)
}
