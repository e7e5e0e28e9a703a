package editor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richfield/internal/config"
	"github.com/kobzarvs/richfield/internal/logger"
	"github.com/kobzarvs/richfield/internal/textfield"
)

const (
	actionMoveLeft      = "move_left"
	actionMoveRight     = "move_right"
	actionLineStart     = "line_start"
	actionLineEnd       = "line_end"
	actionSelectLeft    = "select_left"
	actionSelectRight   = "select_right"
	actionSelectAll     = "select_all"
	actionBackspace     = "backspace"
	actionDeleteChar    = "delete_char"
	actionSubmit        = "submit"
	actionInsertMention = "insert_mention"
	actionInsertChannel = "insert_channel"
	actionClear         = "clear"
	actionBlur          = "blur"
	actionQuit          = "quit"
)

// Editor is a single-line terminal host for a textfield.Field. It receives
// the field's notifications itself.
type Editor struct {
	field    *textfield.Field
	keymap   map[string]string
	tokens   config.Tokens
	mentions []config.Entry
	channels []config.Entry

	nextMention int
	nextChannel int
	anchor      int // selection anchor while extending, -1 otherwise
	scroll      int // first visible column of the field

	value         textfield.Value
	sent          []string
	statusMessage string

	styleMain      tcell.Style
	stylePrompt    tcell.Style
	styleStatus    tcell.Style
	styleSelection tcell.Style
}

func New(cfg config.Config) *Editor {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	selectionFg := parseColor(cfg.Theme.SelectionForeground, mainFg)
	selectionBg := parseColor(cfg.Theme.SelectionBackground, mainBg)
	e := &Editor{
		keymap:         keymap,
		tokens:         cfg.Tokens,
		mentions:       cfg.Mentions,
		channels:       cfg.Channels,
		anchor:         -1,
		styleMain:      tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		stylePrompt:    tcell.StyleDefault.Foreground(mainFg).Background(mainBg).Bold(true),
		styleStatus:    tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleSelection: tcell.StyleDefault.Foreground(selectionFg).Background(selectionBg),
	}
	e.field = textfield.New(cfg.Options(), e)
	e.value = e.field.Value()
	return e
}

func (e *Editor) Field() *textfield.Field { return e.field }

// Sent returns the exported value of every submitted message, oldest first.
func (e *Editor) Sent() []string { return e.sent }

func (e *Editor) StatusMessage() string { return e.statusMessage }

func (e *Editor) SetStatusMessage(msg string) {
	e.setStatus(msg)
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

func (e *Editor) UpdateFocus(focused bool) {
	logger.Editor.Debug("focus changed", "focused", focused)
}

func (e *Editor) UpdateCursor(position int) {
	logger.Editor.Debug("cursor moved", "position", position)
}

func (e *Editor) UpdateValue(v textfield.Value) {
	e.value = v
}

func (e *Editor) SubmitText(text string) {
	data := e.field.Export()
	e.sent = append(e.sent, data)
	logger.Editor.Info("message submitted", "text", text, "data", data)
	e.setStatus("sent " + data)
}

func (e *Editor) HideKeyboard() {
	e.setStatus("keyboard hidden")
}

// HandleKey applies one key press and reports whether the app should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.statusMessage = ""
	e.field.Focus(true)
	key := keyString(ev)
	if key != "" {
		if action, ok := e.keymap[key]; ok {
			return e.execAction(action)
		}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		e.edit(e.field.Selection(), string(ev.Rune()))
	}
	return false
}

// HandlePaste inserts pasted text as one edit.
func (e *Editor) HandlePaste(text string) {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(text)
	if text != "" {
		e.edit(e.field.Selection(), text)
	}
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case actionMoveLeft:
		e.step(-1, false)
	case actionMoveRight:
		e.step(1, false)
	case actionSelectLeft:
		e.step(-1, true)
	case actionSelectRight:
		e.step(1, true)
	case actionLineStart:
		e.moveTo(0, false)
	case actionLineEnd:
		e.moveTo(e.field.Buffer().Len(), false)
	case actionSelectAll:
		e.anchor = 0
		e.field.SetSelection(textfield.Range{Length: e.field.Buffer().Len()})
	case actionBackspace:
		e.backspace()
	case actionDeleteChar:
		e.deleteChar()
	case actionSubmit:
		e.submit()
	case actionInsertMention:
		e.insertEntry(e.mentions, &e.nextMention, e.tokens.MentionPrefix)
	case actionInsertChannel:
		e.insertEntry(e.channels, &e.nextChannel, e.tokens.ChannelPrefix)
	case actionClear:
		e.anchor = -1
		e.field.SetText("")
	case actionBlur:
		e.field.Focus(false)
		e.field.HideKeyboard()
	case actionQuit:
		return true
	default:
		e.setStatus("unknown action: " + action)
	}
	return false
}

// head is the moving end of the selection.
func (e *Editor) head() int {
	sel := e.field.Selection()
	if e.anchor == sel.Location {
		return sel.End()
	}
	return sel.Location
}

func (e *Editor) step(dir int, extend bool) {
	buf := e.field.Buffer()
	sel := e.field.Selection()
	var pos int
	switch {
	case !extend && !sel.IsCaret():
		pos = sel.Location
		if dir > 0 {
			pos = sel.End()
		}
	case dir < 0:
		pos = buf.PrevStop(e.head())
	default:
		pos = buf.NextStop(e.head())
	}
	e.moveTo(pos, extend)
}

func (e *Editor) moveTo(pos int, extend bool) {
	if !extend {
		e.anchor = -1
		e.field.SetSelection(textfield.Caret(pos))
		return
	}
	if e.anchor < 0 {
		e.anchor = e.head()
	}
	start, end := e.anchor, pos
	if end < start {
		start, end = end, start
	}
	e.field.SetSelection(textfield.Range{Location: start, Length: end - start})
}

func (e *Editor) backspace() {
	r := e.field.Selection()
	if r.IsCaret() {
		n := textfield.ClusterBefore(e.field.Text(), r.Location)
		if n == 0 {
			return
		}
		r = textfield.Range{Location: r.Location - n, Length: n}
	}
	e.edit(r, "")
}

func (e *Editor) deleteChar() {
	r := e.field.Selection()
	if r.IsCaret() {
		n := textfield.ClusterAfter(e.field.Text(), r.Location)
		if n == 0 {
			return
		}
		r.Length = n
	}
	e.edit(r, "")
}

func (e *Editor) edit(r textfield.Range, text string) {
	e.anchor = -1
	if !e.field.Edit(r, text) && text != "" {
		e.setStatus(fmt.Sprintf("limit of %d characters reached", e.field.Options().MaxLength))
	}
}

func (e *Editor) submit() {
	if e.field.Buffer().Len() == 0 {
		return
	}
	e.field.Submit()
	e.anchor = -1
	e.field.SetText("")
}

// insertEntry inserts the entry matching a "@query" typed just before the
// caret, replacing the query, or the next entry in turn when nothing was
// typed.
func (e *Editor) insertEntry(entries []config.Entry, next *int, prefix string) {
	if len(entries) == 0 {
		e.setStatus("nothing to insert")
		return
	}
	query, typed := e.pendingQuery(prefix)
	var entry config.Entry
	if typed > 0 {
		found := false
		for _, cand := range entries {
			if strings.HasPrefix(strings.ToLower(cand.Name), strings.ToLower(query)) {
				entry, found = cand, true
				break
			}
		}
		if !found {
			e.setStatus("no match for " + prefix + query)
			return
		}
	} else {
		entry = entries[*next%len(entries)]
		*next++
	}
	payload := entry.Data
	if payload == "" {
		payload = prefix + entry.Name
	}
	e.anchor = -1
	ok := e.field.InsertToken(textfield.TokenInsert{
		Display:   entry.Name,
		Payload:   payload,
		Prefix:    prefix,
		Separator: e.tokens.Separator,
		Backspace: typed,
	})
	if !ok {
		e.setStatus(fmt.Sprintf("limit of %d characters reached", e.field.Options().MaxLength))
	}
}

// pendingQuery finds prefix plus a partial name typed in plain text right
// before the caret. typed is its length in code units, 0 when there is none.
func (e *Editor) pendingQuery(prefix string) (query string, typed int) {
	sel := e.field.Selection()
	if prefix == "" || !sel.IsCaret() {
		return "", 0
	}
	buf := e.field.Buffer()
	before := buf.Substring(textfield.Range{Length: sel.Location})
	i := strings.LastIndex(before, prefix)
	if i < 0 {
		return "", 0
	}
	query = before[i+len(prefix):]
	if strings.ContainsAny(query, " \t") {
		return "", 0
	}
	if buf.TokenAt(textfield.UnitLen(before[:i])) != "" {
		return "", 0
	}
	return query, textfield.UnitLen(prefix + query)
}
