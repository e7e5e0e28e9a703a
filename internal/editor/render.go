package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/richfield/internal/config"
	"github.com/kobzarvs/richfield/internal/textfield"
)

const prompt = "> "

// cell is one grapheme cluster of the field laid out on screen.
type cell struct {
	text   string
	width  int
	offset int // code-unit offset in the buffer
	style  tcell.Style
}

func (e *Editor) layout() []cell {
	var cells []cell
	for _, run := range e.field.Buffer().Runs() {
		style := e.runStyle(run)
		off := run.Range.Location
		g := uniseg.NewGraphemes(run.Text)
		for g.Next() {
			s := g.Str()
			n := textfield.UnitLen(s)
			if r, _ := utf8.DecodeRuneInString(s); unicode.IsControl(r) {
				s = " "
			}
			w := runewidth.StringWidth(s)
			if w == 0 {
				w = 1
			}
			cells = append(cells, cell{text: s, width: w, offset: off, style: style})
			off += n
		}
	}
	return cells
}

func (e *Editor) runStyle(run textfield.Run) tcell.Style {
	style := e.styleMain.Foreground(styleColor(run.Style))
	if run.TokenID != "" {
		style = style.Underline(true)
	}
	return style
}

func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.SetStyle(e.styleMain)
	s.Clear()

	cx := e.renderField(s, w, 0)
	if h >= 3 {
		e.renderStatusline(s, w, h-2)
		e.renderMessageLine(s, w, h-1)
	} else if h == 2 {
		e.renderStatusline(s, w, 1)
	}

	if cx >= w {
		cx = w - 1
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(cx, 0)
	s.Show()
}

// renderField draws the prompt and the visible part of the field and
// returns the cursor column.
func (e *Editor) renderField(s tcell.Screen, w, y int) int {
	clearLine(s, y, w, e.styleMain)
	x0 := drawString(s, 0, y, w, prompt, e.stylePrompt)
	avail := w - x0
	if avail <= 0 {
		return w - 1
	}
	if text, style, ok := e.field.Placeholder(); ok {
		e.scroll = 0
		drawString(s, x0, y, w, text, e.styleMain.Foreground(styleColor(style)))
		return x0
	}

	cells := e.layout()
	sel := e.field.Selection()
	cursorCol := 0
	for _, c := range cells {
		if c.offset < sel.Location {
			cursorCol += c.width
		}
	}
	e.ensureVisible(cursorCol, avail)

	col := 0
	for _, c := range cells {
		start := col
		col += c.width
		if start < e.scroll {
			continue
		}
		x := x0 + start - e.scroll
		if x+c.width > w {
			break
		}
		style := c.style
		if c.offset >= sel.Location && c.offset < sel.End() {
			style = e.styleSelection
		}
		runes := []rune(c.text)
		s.SetContent(x, y, runes[0], runes[1:], style)
	}
	return x0 + cursorCol - e.scroll
}

func (e *Editor) ensureVisible(col, width int) {
	if col < e.scroll {
		e.scroll = col
	}
	if col >= e.scroll+width {
		e.scroll = col - width + 1
	}
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	mode := "IDLE"
	if e.field.Focused() {
		mode = "EDIT"
	}
	buf := e.field.Buffer()
	count := fmt.Sprintf("%d chars", buf.CharCount())
	if limit := e.field.Options().MaxLength; limit > 0 {
		count = fmt.Sprintf("%d/%d", buf.CharCount(), limit)
	}
	status := fmt.Sprintf(" %s | %s | %d tokens ", mode, count, buf.Tokens())
	right := " " + e.value.Data + " "
	drawString(s, 0, y, w, composeStatusLine(status, right, w), e.styleStatus)
}

func (e *Editor) renderMessageLine(s tcell.Screen, w, y int) {
	clearLine(s, y, w, e.styleMain)
	msg := e.statusMessage
	if msg == "" && len(e.sent) > 0 {
		msg = "last: " + e.sent[len(e.sent)-1]
	}
	drawString(s, 0, y, w, msg, e.styleMain)
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawString draws text from column x, stopping before column w, and returns
// the column after the last cell drawn.
func drawString(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		cw := runewidth.StringWidth(g.Str())
		if cw == 0 {
			continue
		}
		if x+cw > w {
			break
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += cw
	}
	return x
}

func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	lw := runewidth.StringWidth(left)
	rw := runewidth.StringWidth(right)
	if lw+rw > width {
		if rw >= width {
			right = runewidth.Truncate(right, width, "…")
			left = ""
		} else {
			left = runewidth.Truncate(left, width-rw, "")
		}
		lw = runewidth.StringWidth(left)
		rw = runewidth.StringWidth(right)
	}
	return left + strings.Repeat(" ", max(0, width-lw-rw)) + right
}

func styleColor(st textfield.Style) tcell.Color {
	r, g, b := st.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") {
		argb, err := config.ParseColor(name)
		if err != nil {
			return fallback
		}
		return tcell.NewHexColor(int32(argb & 0xFFFFFF))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
