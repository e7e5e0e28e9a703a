package textfield

// SpanAt resolves the maximal contiguous range of characters sharing the
// token id of the character at pos. It reports false outside [0, Len()) or
// when that character is plain text.
func (b *Buffer) SpanAt(pos int) (Range, bool) {
	i, off := b.runAt(pos)
	if i < 0 || b.runs[i].token == "" {
		return Range{}, false
	}
	id := b.runs[i].token

	first, start := i, off
	for first > 0 && b.runs[first-1].token == id {
		first--
		start -= len(b.runs[first].units)
	}
	end := start
	for j := first; j < len(b.runs) && b.runs[j].token == id; j++ {
		end += len(b.runs[j].units)
	}
	return Range{Location: start, Length: end - start}, true
}

// displayEnd is the offset just past the span's text with surrounding
// whitespace trimmed.
func (b *Buffer) displayEnd(span Range) int {
	return span.Location + trimmedUnitLen(b.Substring(span))
}

// tailAllowance is how many code units past the display end still count as
// the token's end: its separator, or one character when none was recorded.
func (b *Buffer) tailAllowance(span Range) int {
	t, ok := b.tokens[b.TokenAt(span.Location)]
	if !ok {
		return 1
	}
	return max(1, UnitLen(t.Separator))
}

// NextStop is the caret position one step right of pos. A token is crossed
// in one step.
func (b *Buffer) NextStop(pos int) int {
	if pos >= b.length {
		return b.length
	}
	if span, ok := b.SpanAt(pos); ok {
		return span.End()
	}
	return pos + ClusterAfter(b.Text(), pos)
}

// PrevStop is the caret position one step left of pos.
func (b *Buffer) PrevStop(pos int) int {
	if pos <= 0 {
		return 0
	}
	if span, ok := b.SpanAt(pos - 1); ok {
		return span.Location
	}
	return pos - ClusterBefore(b.Text(), pos)
}
