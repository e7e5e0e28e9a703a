package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richfield/internal/config"
	"github.com/kobzarvs/richfield/internal/textfield"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return New(config.Default())
}

func typeText(e *Editor, text string) {
	for _, r := range text {
		e.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
}

func press(e *Editor, key tcell.Key, mods tcell.ModMask) bool {
	return e.HandleKey(tcell.NewEventKey(key, 0, mods))
}

func TestTypingThenMentionExports(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "hi ")
	press(e, tcell.KeyCtrlT, 0)

	if got := e.Field().Text(); got != "hi @Alice " {
		t.Fatalf("text = %q, want %q", got, "hi @Alice ")
	}
	if got := e.Field().Export(); got != "hi <@1001>" {
		t.Fatalf("export = %q, want %q", got, "hi <@1001>")
	}
	if !e.Field().Focused() {
		t.Fatalf("field not focused after typing")
	}
}

func TestMentionsCycle(t *testing.T) {
	e := newTestEditor(t)
	press(e, tcell.KeyCtrlT, 0)
	press(e, tcell.KeyCtrlT, 0)
	press(e, tcell.KeyCtrlG, 0)
	if got := e.Field().Text(); got != "@Alice @Bob #general " {
		t.Fatalf("text = %q, want %q", got, "@Alice @Bob #general ")
	}
	if got := e.Field().Export(); got != "<@1001><@1002><#2001>" {
		t.Fatalf("export = %q, want %q", got, "<@1001><@1002><#2001>")
	}
}

func TestBackspaceRemovesWholeMention(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "hi ")
	press(e, tcell.KeyCtrlT, 0)
	press(e, tcell.KeyBackspace2, 0)

	if got := e.Field().Text(); got != "hi " {
		t.Fatalf("text = %q, want %q", got, "hi ")
	}
	if got := e.Field().Buffer().Tokens(); got != 0 {
		t.Fatalf("tokens = %d, want 0", got)
	}
}

func TestQueryCompletesMention(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "@ca")
	press(e, tcell.KeyCtrlT, 0)
	if got := e.Field().Text(); got != "@Carol " {
		t.Fatalf("text = %q, want %q", got, "@Carol ")
	}
	if got := e.Field().Export(); got != "<@1003>" {
		t.Fatalf("export = %q, want %q", got, "<@1003>")
	}

	typeText(e, "@zz")
	press(e, tcell.KeyCtrlT, 0)
	if got := e.Field().Text(); got != "@Carol @zz" {
		t.Fatalf("text = %q, want %q", got, "@Carol @zz")
	}
	if got := e.StatusMessage(); got != "no match for @zz" {
		t.Fatalf("status = %q, want %q", got, "no match for @zz")
	}
}

func TestArrowsSkipMention(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "a")
	press(e, tcell.KeyCtrlT, 0)
	typeText(e, "b")

	press(e, tcell.KeyLeft, 0)
	if got := e.Field().Selection(); got != textfield.Caret(8) {
		t.Fatalf("selection = %+v, want caret 8", got)
	}
	press(e, tcell.KeyLeft, 0)
	if got := e.Field().Selection(); got != textfield.Caret(1) {
		t.Fatalf("selection = %+v, want caret 1", got)
	}
	press(e, tcell.KeyRight, 0)
	if got := e.Field().Selection(); got != textfield.Caret(8) {
		t.Fatalf("selection = %+v, want caret 8", got)
	}
	press(e, tcell.KeyHome, 0)
	if got := e.Field().Selection(); got != textfield.Caret(0) {
		t.Fatalf("selection = %+v, want caret 0", got)
	}
	press(e, tcell.KeyEnd, 0)
	if got := e.Field().Selection(); got != textfield.Caret(9) {
		t.Fatalf("selection = %+v, want caret 9", got)
	}
}

func TestShiftSelectionReplace(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "abc")
	press(e, tcell.KeyLeft, tcell.ModShift)
	press(e, tcell.KeyLeft, tcell.ModShift)
	if got := e.Field().Selection(); got != (textfield.Range{Location: 1, Length: 2}) {
		t.Fatalf("selection = %+v, want {1 2}", got)
	}
	press(e, tcell.KeyRight, tcell.ModShift)
	if got := e.Field().Selection(); got != (textfield.Range{Location: 2, Length: 1}) {
		t.Fatalf("selection = %+v, want {2 1}", got)
	}
	press(e, tcell.KeyLeft, tcell.ModShift)
	typeText(e, "X")
	if got := e.Field().Text(); got != "aX" {
		t.Fatalf("text = %q, want %q", got, "aX")
	}

	press(e, tcell.KeyCtrlA, 0)
	press(e, tcell.KeyDelete, 0)
	if got := e.Field().Text(); got != "" {
		t.Fatalf("text after select all + del = %q, want empty", got)
	}
}

func TestSubmitRecordsExportAndClears(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "yo ")
	press(e, tcell.KeyCtrlT, 0)
	if quit := press(e, tcell.KeyEnter, 0); quit {
		t.Fatalf("enter quit the editor")
	}
	sent := e.Sent()
	if len(sent) != 1 || sent[0] != "yo <@1001>" {
		t.Fatalf("sent = %q, want [%q]", sent, "yo <@1001>")
	}
	if got := e.Field().Text(); got != "" {
		t.Fatalf("text after submit = %q, want empty", got)
	}
	if got := e.StatusMessage(); got != "sent yo <@1001>" {
		t.Fatalf("status = %q, want %q", got, "sent yo <@1001>")
	}

	press(e, tcell.KeyEnter, 0)
	if len(e.Sent()) != 1 {
		t.Fatalf("empty field was submitted")
	}
}

func TestMaxLengthStopsTyping(t *testing.T) {
	cfg := config.Default()
	cfg.Field.MaxLength = 3
	e := New(cfg)
	typeText(e, "abcd")
	if got := e.Field().Text(); got != "abc" {
		t.Fatalf("text = %q, want %q", got, "abc")
	}
	if got := e.StatusMessage(); got != "limit of 3 characters reached" {
		t.Fatalf("status = %q, want limit message", got)
	}
}

func TestQuitAndBlur(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "x")
	press(e, tcell.KeyEscape, 0)
	if e.Field().Focused() {
		t.Fatalf("field still focused after esc")
	}
	if !press(e, tcell.KeyCtrlC, 0) {
		t.Fatalf("ctrl+c did not quit")
	}
	press(e, tcell.KeyCtrlL, 0)
	if got := e.Field().Text(); got != "" {
		t.Fatalf("text after clear = %q, want empty", got)
	}
}

func TestHandlePasteFlattensLines(t *testing.T) {
	e := newTestEditor(t)
	e.HandlePaste("one\ntwo\r\nthree")
	if got := e.Field().Text(); got != "one two three" {
		t.Fatalf("text = %q, want %q", got, "one two three")
	}
}

func TestKeyString(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', 0), "a"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', 0), "space"},
		{tcell.NewEventKey(tcell.KeyCtrlT, 0, 0), "ctrl+t"},
		{tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModCtrl), "ctrl+g"},
		{tcell.NewEventKey(tcell.KeyBackspace, 0, 0), "backspace"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), "backspace"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), "enter"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), "shift+left"},
		{tcell.NewEventKey(tcell.KeyDelete, 0, 0), "del"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, 0), "esc"},
	}
	for _, tc := range cases {
		if got := keyString(tc.ev); got != tc.want {
			t.Fatalf("keyString(%v) = %q, want %q", tc.ev.Name(), got, tc.want)
		}
	}
}
