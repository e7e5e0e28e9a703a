package textfield

import "testing"

// mention builds "hi " followed by the token "@Alice " at [3, 10).
func mention(t *testing.T) (*Buffer, Token) {
	t.Helper()
	b := NewBuffer("hi ", DefaultStyle())
	tok := b.insertToken(Caret(3), Token{
		Display:   "@Alice ",
		Payload:   "<@1>",
		Style:     DefaultTokenStyle(),
		Separator: " ",
	})
	return b, tok
}

func TestDecidePastEndPermits(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Caret(b.Len()), Text: "x"})
	if d.Verdict != Permit {
		t.Fatalf("verdict = %v, want permit", d.Verdict)
	}
	if d.Cursor != b.Len()+1 {
		t.Fatalf("cursor = %d, want %d", d.Cursor, b.Len()+1)
	}
}

func TestDecideBackspaceAtTokenEndIsAtomic(t *testing.T) {
	b, _ := mention(t)
	// "e" (last display char) and the trailing separator both count.
	for _, loc := range []int{8, 9} {
		d := Decide(b, Edit{Range: Range{Location: loc, Length: 1}})
		if d.Verdict != Atomic {
			t.Fatalf("loc %d: verdict = %v, want atomic", loc, d.Verdict)
		}
		if d.Edit.Range != (Range{Location: 3, Length: 7}) {
			t.Fatalf("loc %d: range = %+v, want {3 7}", loc, d.Edit.Range)
		}
		if d.Cursor != 3 {
			t.Fatalf("loc %d: cursor = %d, want 3", loc, d.Cursor)
		}
	}
}

func TestDecideBackspaceInsideTokenDemotes(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Range{Location: 5, Length: 1}})
	if d.Verdict != Rewrite {
		t.Fatalf("verdict = %v, want rewrite", d.Verdict)
	}
	if len(d.Demote) != 1 || d.Demote[0] != (Range{Location: 3, Length: 7}) {
		t.Fatalf("demote = %+v, want [{3 7}]", d.Demote)
	}
	if d.Edit.Range != (Range{Location: 5, Length: 1}) {
		t.Fatalf("edit range rewritten to %+v", d.Edit.Range)
	}
}

func TestDecideBackspaceOnPlainTextPermits(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Range{Location: 1, Length: 1}})
	if d.Verdict != Permit {
		t.Fatalf("verdict = %v, want permit", d.Verdict)
	}
}

func TestDecideTypingAfterTokenDemotesSeparator(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Caret(9), Text: "x"})
	if d.Verdict != Rewrite {
		t.Fatalf("verdict = %v, want rewrite", d.Verdict)
	}
	if len(d.Demote) != 1 || d.Demote[0] != (Range{Location: 9, Length: 1}) {
		t.Fatalf("demote = %+v, want [{9 1}]", d.Demote)
	}
}

func TestDecideTypingBeforeTokenPermits(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Caret(3), Text: "x"})
	if d.Verdict != Permit {
		t.Fatalf("verdict = %v, want permit", d.Verdict)
	}
}

func TestDecideTypingInsideTokenDemotes(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Caret(5), Text: "x"})
	if d.Verdict != Rewrite || len(d.Demote) != 1 {
		t.Fatalf("decision = %+v, want rewrite of the token", d)
	}
}

func TestDecideRangeCuttingTwoTokens(t *testing.T) {
	b := NewBuffer("", DefaultStyle())
	b.insertToken(Caret(0), Token{Display: "@Ann", Payload: "a", Style: DefaultTokenStyle()})
	b.replace(Caret(4), " mid ", DefaultStyle(), "")
	b.insertToken(Caret(9), Token{Display: "@Ben", Payload: "b", Style: DefaultTokenStyle()})

	d := Decide(b, Edit{Range: Range{Location: 2, Length: 9}})
	if d.Verdict != Rewrite {
		t.Fatalf("verdict = %v, want rewrite", d.Verdict)
	}
	want := []Range{{Location: 0, Length: 4}, {Location: 9, Length: 4}}
	if len(d.Demote) != 2 || d.Demote[0] != want[0] || d.Demote[1] != want[1] {
		t.Fatalf("demote = %+v, want %+v", d.Demote, want)
	}
}

func TestDecideRangeInsideOneToken(t *testing.T) {
	b, _ := mention(t)
	d := Decide(b, Edit{Range: Range{Location: 4, Length: 3}})
	if d.Verdict != Rewrite || len(d.Demote) != 1 {
		t.Fatalf("decision = %+v, want a single demotion", d)
	}
}

func TestDecideRangeOverPlainTextPermits(t *testing.T) {
	b := NewBuffer("hello world", DefaultStyle())
	d := Decide(b, Edit{Range: Range{Location: 2, Length: 5}, Text: "y"})
	if d.Verdict != Permit {
		t.Fatalf("verdict = %v, want permit", d.Verdict)
	}
	if d.Cursor != 3 {
		t.Fatalf("cursor = %d, want 3", d.Cursor)
	}
}

func TestDecideEmojiDeletionIsSingleCharacter(t *testing.T) {
	b := NewBuffer("", DefaultStyle())
	b.insertToken(Caret(0), Token{Display: "@😀 ", Payload: "e", Style: DefaultTokenStyle(), Separator: " "})

	d := Decide(b, Edit{Range: Range{Location: 1, Length: 2}})
	if d.Verdict != Atomic {
		t.Fatalf("verdict = %v, want atomic", d.Verdict)
	}
	if d.Edit.Range != (Range{Location: 0, Length: 4}) {
		t.Fatalf("range = %+v, want {0 4}", d.Edit.Range)
	}
}

func TestDecideWideSeparatorAllowance(t *testing.T) {
	b := NewBuffer("", DefaultStyle())
	b.insertToken(Caret(0), Token{Display: "#dev  ", Payload: "d", Style: DefaultTokenStyle(), Separator: "  "})

	d := Decide(b, Edit{Range: Range{Location: 5, Length: 1}})
	if d.Verdict != Atomic {
		t.Fatalf("verdict = %v, want atomic", d.Verdict)
	}
}

func TestVerdictString(t *testing.T) {
	if got := Atomic.String(); got != "atomic" {
		t.Fatalf("Atomic.String() = %q, want %q", got, "atomic")
	}
	if got := Verdict(42).String(); got != "unknown" {
		t.Fatalf("Verdict(42).String() = %q, want %q", got, "unknown")
	}
}
