package flappy

// Collides reports whether the character touches the solid part of an obstacle.
//
// The test uses the circle's bounding extents rather than a true
// circle-rectangle distance. All comparisons are strict, so a character that
// exactly touches an edge does not collide.
func Collides(c Character, o Obstacle, width, gapSize float64) bool {
	if !c.HSpan().Overlaps(o.HSpan(width)) {
		return false
	}

	v := c.VSpan()
	hitTop := v.Min < o.GapTop
	hitBottom := v.Max > o.GapBottom(gapSize)
	return hitTop || hitBottom
}

// outOfBounds reports why the character left the field, if it did.
func outOfBounds(c Character, fieldHeight float64) EndReason {
	v := c.VSpan()
	switch {
	case v.Min < 0:
		return EndCeiling
	case v.Max > fieldHeight:
		return EndGround
	}
	return EndNone
}
