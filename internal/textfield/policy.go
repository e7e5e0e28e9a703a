package textfield

// Edit is a proposed mutation: replace Range with Text.
type Edit struct {
	Range Range
	Text  string
}

// Verdict classifies how a proposed edit is committed.
type Verdict uint8

const (
	// Permit applies the edit as proposed.
	Permit Verdict = iota
	// Rewrite demotes the Decision's spans to plain text, then applies the
	// edit as proposed.
	Rewrite
	// Atomic applies the Decision's own edit instead of the proposal.
	Atomic
	// Reject drops the edit.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Permit:
		return "permit"
	case Rewrite:
		return "rewrite"
	case Atomic:
		return "atomic"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// Decision is the outcome of Decide. Edit is what the applier commits and
// Cursor is the caret position afterwards.
type Decision struct {
	Verdict Verdict
	Edit    Edit
	Demote  []Range
	Cursor  int
	Reason  string
}

func permit(e Edit, reason string) Decision {
	return Decision{Verdict: Permit, Edit: e, Cursor: e.Range.Location + UnitLen(e.Text), Reason: reason}
}

func rewrite(e Edit, reason string, demote ...Range) Decision {
	d := permit(e, reason)
	d.Verdict = Rewrite
	d.Demote = demote
	return d
}

// Decide classifies a proposed edit against b without mutating it. Length
// limits are not checked here; see Field.
func Decide(b *Buffer, e Edit) Decision {
	if e.Range.Location >= b.Len() {
		return permit(e, "append")
	}
	if !b.singleCharacter(e.Range) {
		return decideSpan(b, e)
	}
	return decideCaret(b, e)
}

// decideSpan handles edits covering more than one character: tokens cut by
// either boundary lose their identity before the edit lands.
func decideSpan(b *Buffer, e Edit) Decision {
	var demote []Range
	head, headOK := b.SpanAt(e.Range.Location)
	if headOK && e.Range.Location < b.displayEnd(head) {
		demote = append(demote, head)
	}
	tail, tailOK := b.SpanAt(e.Range.End())
	if tailOK && (!headOK || tail != head) && e.Range.End() > tail.Location {
		demote = append(demote, tail)
	}
	if len(demote) == 0 {
		return permit(e, "range")
	}
	return rewrite(e, "range cuts token", demote...)
}

func decideCaret(b *Buffer, e Edit) Decision {
	span, ok := b.SpanAt(e.Range.Location)
	if !ok {
		return permit(e, "plain")
	}
	end := b.displayEnd(span)
	allow := b.tailAllowance(span)
	atEnd := func(pos int) bool { return pos >= end && pos <= end+allow }

	switch {
	case e.Range.Length > 0 && e.Text == "" && atEnd(e.Range.End()):
		return Decision{
			Verdict: Atomic,
			Edit:    Edit{Range: span},
			Cursor:  span.Location,
			Reason:  "delete token",
		}
	case e.Range.IsCaret() && e.Text != "" && atEnd(e.Range.Location):
		// Separator characters after the caret would otherwise end up on
		// the far side of the new text, splitting the token in two.
		if e.Range.Location < span.End() {
			return rewrite(e, "type after token", Range{Location: e.Range.Location, Length: span.End() - e.Range.Location})
		}
		return permit(e, "type after token")
	case e.Range.End() > span.Location:
		return rewrite(e, "edit inside token", span)
	}
	return permit(e, "before token")
}

// singleCharacter reports whether r covers at most one grapheme cluster.
func (b *Buffer) singleCharacter(r Range) bool {
	if r.Length <= 1 {
		return true
	}
	return CharCount(b.Substring(r)) <= 1
}
