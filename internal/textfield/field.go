package textfield

import (
	"github.com/kobzarvs/richfield/internal/logger"
)

// ClearAll as a leading-delete count clears the whole buffer before inserting.
const ClearAll = -1

type Options struct {
	Text             string
	TextStyle        Style
	Placeholder      string
	PlaceholderStyle Style
	TokenStyle       Style
	MaxLength        int // characters; 0 = unlimited
}

// TokenInsert describes a token insertion at the cursor.
type TokenInsert struct {
	Display   string
	Payload   string
	Style     Style // zero = Options.TokenStyle
	Prefix    string
	Separator string
	Backspace int // characters to delete before the cursor first, or ClearAll
}

// Field is one editing session: a buffer, its selection and the host it
// reports to. It is not safe for concurrent use.
type Field struct {
	buf       *Buffer
	sel       Range
	opts      Options
	host      Host
	lastInput string
	focused   bool
}

func New(opts Options, host Host) *Field {
	opts.TextStyle = opts.TextStyle.Or(DefaultStyle())
	opts.PlaceholderStyle = opts.PlaceholderStyle.Or(opts.TextStyle)
	opts.TokenStyle = opts.TokenStyle.Or(DefaultTokenStyle())
	if opts.MaxLength < 0 {
		opts.MaxLength = 0
	}
	if host == nil {
		host = NopHost{}
	}
	f := &Field{
		buf:  NewBuffer(opts.Text, opts.TextStyle),
		opts: opts,
		host: host,
	}
	f.sel = Caret(f.buf.Len())
	return f
}

func (f *Field) Buffer() *Buffer { return f.buf }

func (f *Field) Options() Options { return f.opts }

func (f *Field) Text() string { return f.buf.Text() }

// Export returns the logical value with token payloads substituted.
func (f *Field) Export() string { return f.buf.Export() }

func (f *Field) Selection() Range { return f.sel }

func (f *Field) Focused() bool { return f.focused }

func (f *Field) InputText() string { return f.lastInput }

// Placeholder reports the placeholder to draw, if the field is empty.
func (f *Field) Placeholder() (string, Style, bool) {
	if f.buf.Len() > 0 || f.opts.Placeholder == "" {
		return "", Style{}, false
	}
	return f.opts.Placeholder, f.opts.PlaceholderStyle, true
}

func (f *Field) Value() Value {
	return Value{
		Text:           f.buf.Text(),
		Data:           f.buf.Export(),
		SelectionStart: f.sel.Location,
		SelectionEnd:   f.sel.End(),
		InputText:      f.lastInput,
	}
}

// SetSelection moves the selection, clamped to the buffer.
func (f *Field) SetSelection(r Range) {
	start := clampInt(r.Location, 0, f.buf.Len())
	end := clampInt(r.End(), start, f.buf.Len())
	next := Range{Location: start, Length: end - start}
	if next == f.sel {
		return
	}
	f.sel = next
	f.host.UpdateCursor(next.Location)
}

// Edit routes a host keystroke proposal through the policy engine and
// commits the result. It reports whether the buffer changed.
func (f *Field) Edit(r Range, text string) bool {
	if !f.inBounds(r) {
		logger.Field.Debug("edit out of bounds", "location", r.Location, "length", r.Length)
		return false
	}
	return f.commit(Edit{Range: r, Text: text}, func(e Edit) {
		f.buf.replace(e.Range, e.Text, f.opts.TextStyle, "")
	})
}

// Replace swaps the text in r for text. Out-of-bounds ranges are ignored.
func (f *Field) Replace(text string, r Range) bool {
	return f.Edit(r, text)
}

// InsertText inserts plain text over the selection, after deleting
// backspace characters before it.
func (f *Field) InsertText(text string, backspace int) bool {
	target := f.insertTarget(backspace)
	return f.commit(Edit{Range: target, Text: text}, func(e Edit) {
		f.buf.replace(e.Range, e.Text, f.opts.TextStyle, "")
	})
}

// InsertToken inserts prefix+display+separator as one token over the
// selection, after deleting backspace characters before it.
func (f *Field) InsertToken(t TokenInsert) bool {
	display := t.Prefix + t.Display + t.Separator
	if display == "" {
		return false
	}
	target := f.insertTarget(t.Backspace)
	var inserted Token
	ok := f.commit(Edit{Range: target, Text: display}, func(e Edit) {
		inserted = f.buf.insertToken(e.Range, Token{
			Display:   e.Text,
			Payload:   t.Payload,
			Style:     t.Style.Or(f.opts.TokenStyle),
			Separator: t.Separator,
		})
	})
	if ok {
		logger.Field.Debug("token inserted", "id", inserted.ID, "display", display)
	}
	return ok
}

// SetText replaces the whole buffer with plain text. It bypasses the policy
// engine and the length limit.
func (f *Field) SetText(text string) {
	f.buf.reset(text, f.opts.TextStyle)
	f.sel = Caret(f.buf.Len())
	f.lastInput = text
	f.host.UpdateValue(f.Value())
}

func (f *Field) Focus(focused bool) {
	if f.focused == focused {
		return
	}
	f.focused = focused
	f.host.UpdateFocus(focused)
}

// Submit reports the display text to the host.
func (f *Field) Submit() {
	f.host.SubmitText(f.buf.Text())
}

func (f *Field) HideKeyboard() {
	f.host.HideKeyboard()
}

// insertTarget is the selection, extended left by backspace code units when
// there is room, or the whole buffer for ClearAll.
func (f *Field) insertTarget(backspace int) Range {
	sel := f.sel
	switch {
	case backspace == ClearAll:
		return Range{Location: 0, Length: f.buf.Len()}
	case backspace > 0 && sel.Location >= backspace:
		return Range{Location: sel.Location - backspace, Length: sel.Length + backspace}
	}
	return sel
}

func (f *Field) inBounds(r Range) bool {
	return r.Location >= 0 && r.Length >= 0 && r.End() <= f.buf.Len()
}

// admits applies the length limit to e.
func (f *Field) admits(e Edit) bool {
	if f.opts.MaxLength == 0 {
		return true
	}
	removed := CharCount(f.buf.Substring(e.Range))
	return f.buf.CharCount()-removed+CharCount(e.Text) <= f.opts.MaxLength
}

// Decide runs the length limit and then the policy engine for e.
func (f *Field) Decide(e Edit) Decision {
	if !f.admits(e) {
		return Decision{Verdict: Reject, Edit: e, Cursor: f.sel.Location, Reason: "max length"}
	}
	return Decide(f.buf, e)
}

// commit decides e and applies the outcome. insert writes a permitted
// edit's text; atomic decisions only ever delete. Inserted plain text always
// takes the plain style with no token id, whatever it is typed next to.
func (f *Field) commit(e Edit, insert func(Edit)) bool {
	d := f.Decide(e)
	logger.Field.Decision(d.Verdict.String(), d.Reason, e.Range.Location, e.Range.Length, UnitLen(e.Text))
	switch d.Verdict {
	case Reject:
		return false
	case Atomic:
		f.buf.replace(d.Edit.Range, "", f.opts.TextStyle, "")
	default:
		if d.Edit.Range.IsCaret() && d.Edit.Text == "" {
			return false
		}
		for _, r := range d.Demote {
			f.buf.setAttributes(r, f.opts.TextStyle, "")
		}
		insert(d.Edit)
	}
	f.buf.prune()
	f.sel = Caret(d.Cursor)
	f.lastInput = e.Text
	f.host.UpdateValue(f.Value())
	return true
}
