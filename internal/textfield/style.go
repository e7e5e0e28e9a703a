package textfield

// Style is the visual attribute set of one run. It is a value type: runs copy
// it, so changing a Style never affects text that was already inserted.
type Style struct {
	Color    uint32 // ARGB
	FontSize float64
	Height   float64
}

const (
	defaultFontSize   = 14
	defaultLineHeight = 1.17
)

// DefaultStyle is the plain text style used when no text style is configured.
func DefaultStyle() Style {
	return Style{Color: 0xFF000000, FontSize: defaultFontSize, Height: defaultLineHeight}
}

// DefaultTokenStyle is the style given to tokens inserted without a style.
func DefaultTokenStyle() Style {
	return Style{Color: 0xFF0000FF, FontSize: defaultFontSize, Height: defaultLineHeight}
}

func (s Style) IsZero() bool {
	return s == Style{}
}

// Or returns s, or fallback when s is the zero Style.
func (s Style) Or(fallback Style) Style {
	if s.IsZero() {
		return fallback
	}
	return s
}

// RGB splits the color into 8-bit channels, ignoring alpha.
func (s Style) RGB() (r, g, b uint8) {
	return uint8(s.Color >> 16), uint8(s.Color >> 8), uint8(s.Color)
}

// StyleFromArgs decodes a host text style dictionary ("color", "fontSize",
// "height"). Missing keys keep the fallback's value; a nil map yields the
// fallback unchanged.
func StyleFromArgs(args map[string]any, fallback Style) Style {
	if args == nil {
		return fallback
	}
	out := fallback
	if v, ok := number(args["color"]); ok {
		out.Color = uint32(int64(v))
	}
	if v, ok := number(args["fontSize"]); ok && v > 0 {
		out.FontSize = v
	}
	if v, ok := number(args["height"]); ok && v > 0 {
		out.Height = v
	}
	return out
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}
