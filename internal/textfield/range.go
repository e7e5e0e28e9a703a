package textfield

// Range is a half-open span [Location, Location+Length) in code units.
type Range struct {
	Location int
	Length   int
}

func (r Range) End() int { return r.Location + r.Length }

func (r Range) IsCaret() bool { return r.Length == 0 }

// Caret returns an empty range at pos.
func Caret(pos int) Range { return Range{Location: pos} }

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
