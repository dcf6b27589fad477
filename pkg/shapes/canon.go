package shapes

// Shave trims p to the minimal bounding box of its live cells. Each of four
// rounds drops leading and trailing dead rows and then rotates 90°, so after
// the last round the result is back in its original orientation with every
// side trimmed.
func Shave(p Pattern) Pattern {
	for i := 0; i < 4; i++ {
		p = p.trimRows().Rotate()
	}
	return p
}

// Canonicalize shaves p and returns it at 0°, 90°, 180° and 270°.
// An empty pattern has no candidates.
func Canonicalize(p Pattern) []Pattern {
	p = Shave(p)
	if p.Empty() {
		return nil
	}
	out := make([]Pattern, 0, 4)
	for i := 0; i < 4; i++ {
		out = append(out, p)
		p = p.Rotate()
	}
	return out
}
