package textfield

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Token is an atomic inline unit whose display text differs from the payload
// it exports as.
type Token struct {
	ID        string
	Display   string
	Payload   string
	Style     Style
	Separator string
}

// Run is a read-only view of a maximal stretch of text sharing one style and
// token id.
type Run struct {
	Range   Range
	Text    string
	Style   Style
	TokenID string
}

type run struct {
	units []uint16
	style Style
	token string
}

// Buffer is the attributed character sequence plus the token registry.
// It holds no editing policy.
type Buffer struct {
	runs   []run
	tokens map[string]Token
	length int
}

func NewBuffer(text string, style Style) *Buffer {
	b := &Buffer{tokens: make(map[string]Token)}
	b.replace(Range{}, text, style, "")
	return b
}

// Len returns the buffer length in code units.
func (b *Buffer) Len() int { return b.length }

func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, r := range b.runs {
		sb.WriteString(decode(r.units))
	}
	return sb.String()
}

// CharCount returns the number of user-perceived characters.
func (b *Buffer) CharCount() int {
	return CharCount(b.Text())
}

// Substring returns the text covered by r, clamped to the buffer.
func (b *Buffer) Substring(r Range) string {
	start := clampInt(r.Location, 0, b.length)
	end := clampInt(r.End(), start, b.length)
	if start == end {
		return ""
	}
	out := make([]uint16, 0, end-start)
	off := 0
	for _, rn := range b.runs {
		n := len(rn.units)
		lo := clampInt(start-off, 0, n)
		hi := clampInt(end-off, 0, n)
		if lo < hi {
			out = append(out, rn.units[lo:hi]...)
		}
		off += n
		if off >= end {
			break
		}
	}
	return decode(out)
}

// Runs returns the current runs in order.
func (b *Buffer) Runs() []Run {
	out := make([]Run, 0, len(b.runs))
	off := 0
	for _, r := range b.runs {
		out = append(out, Run{
			Range:   Range{Location: off, Length: len(r.units)},
			Text:    decode(r.units),
			Style:   r.style,
			TokenID: r.token,
		})
		off += len(r.units)
	}
	return out
}

// TokenAt returns the token id of the character at pos, or "".
func (b *Buffer) TokenAt(pos int) string {
	i, _ := b.runAt(pos)
	if i < 0 {
		return ""
	}
	return b.runs[i].token
}

// StyleAt returns the style of the character at pos.
func (b *Buffer) StyleAt(pos int) (Style, bool) {
	i, _ := b.runAt(pos)
	if i < 0 {
		return Style{}, false
	}
	return b.runs[i].style, true
}

// Token looks up a registered token.
func (b *Buffer) Token(id string) (Token, bool) {
	t, ok := b.tokens[id]
	return t, ok
}

// Tokens returns the number of live tokens.
func (b *Buffer) Tokens() int { return len(b.tokens) }

// runAt returns the index of the run holding pos and that run's start offset.
func (b *Buffer) runAt(pos int) (int, int) {
	if pos < 0 || pos >= b.length {
		return -1, 0
	}
	off := 0
	for i, r := range b.runs {
		if pos < off+len(r.units) {
			return i, off
		}
		off += len(r.units)
	}
	return -1, 0
}

// insertToken registers a new token and writes its text over r.
func (b *Buffer) insertToken(r Range, t Token) Token {
	t.ID = uuid.NewString()
	b.tokens[t.ID] = t
	b.replace(r, t.Display, t.Style, t.ID)
	return t
}

// replace swaps the text in r for text carrying the given attributes.
func (b *Buffer) replace(r Range, text string, style Style, token string) {
	start := b.splitAt(r.Location)
	end := b.splitAt(r.End())
	tail := append([]run(nil), b.runs[end:]...)
	b.runs = b.runs[:start]
	if text != "" {
		b.runs = append(b.runs, run{units: encode(text), style: style, token: token})
	}
	b.runs = append(b.runs, tail...)
	b.normalize()
}

// setAttributes restyles r in place.
func (b *Buffer) setAttributes(r Range, style Style, token string) {
	if r.Length <= 0 {
		return
	}
	start := b.splitAt(r.Location)
	end := b.splitAt(r.End())
	for i := start; i < end; i++ {
		b.runs[i].style = style
		b.runs[i].token = token
	}
	b.normalize()
}

// splitAt guarantees a run boundary at pos and returns the index of the first
// run starting at or after it.
func (b *Buffer) splitAt(pos int) int {
	off := 0
	for i, r := range b.runs {
		if pos <= off {
			return i
		}
		n := len(r.units)
		if pos < off+n {
			cut := pos - off
			head := run{units: append([]uint16(nil), r.units[:cut]...), style: r.style, token: r.token}
			rest := run{units: append([]uint16(nil), r.units[cut:]...), style: r.style, token: r.token}
			b.runs[i] = head
			b.runs = slices.Insert(b.runs, i+1, rest)
			return i + 1
		}
		off += n
	}
	return len(b.runs)
}

// normalize drops empty runs, merges neighbours with equal attributes and
// recomputes the cached length.
func (b *Buffer) normalize() {
	out := b.runs[:0]
	b.length = 0
	for _, r := range b.runs {
		if len(r.units) == 0 {
			continue
		}
		b.length += len(r.units)
		if n := len(out); n > 0 && out[n-1].style == r.style && out[n-1].token == r.token {
			out[n-1].units = append(out[n-1].units, r.units...)
			continue
		}
		out = append(out, r)
	}
	b.runs = out
}

// prune forgets tokens whose id no longer appears in any run.
func (b *Buffer) prune() {
	if len(b.tokens) == 0 {
		return
	}
	live := make(map[string]struct{}, len(b.tokens))
	for _, r := range b.runs {
		if r.token != "" {
			live[r.token] = struct{}{}
		}
	}
	for id := range b.tokens {
		if _, ok := live[id]; !ok {
			delete(b.tokens, id)
		}
	}
}

// reset clears all text and tokens.
func (b *Buffer) reset(text string, style Style) {
	b.runs = nil
	b.tokens = make(map[string]Token)
	b.length = 0
	b.replace(Range{}, text, style, "")
}
