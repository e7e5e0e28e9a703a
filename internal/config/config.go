package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kobzarvs/richfield/internal/textfield"
)

type Style struct {
	Color    string  `toml:"color"`
	FontSize float64 `toml:"font-size"`
	Height   float64 `toml:"height"`
}

type FieldOptions struct {
	Text             string `toml:"text"`
	Placeholder      string `toml:"placeholder"`
	MaxLength        int    `toml:"max-length"`
	TextStyle        Style  `toml:"text-style"`
	PlaceholderStyle Style  `toml:"placeholder-style"`
}

type Tokens struct {
	MentionPrefix string `toml:"mention-prefix"`
	ChannelPrefix string `toml:"channel-prefix"`
	Separator     string `toml:"separator"`
	Style         Style  `toml:"style"`
}

// Entry is a sample token offered by the terminal host.
type Entry struct {
	Name string `toml:"name"`
	Data string `toml:"data"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
}

type Config struct {
	Field    FieldOptions      `toml:"field"`
	Tokens   Tokens            `toml:"tokens"`
	Mentions []Entry           `toml:"mention"`
	Channels []Entry           `toml:"channel"`
	Theme    Theme             `toml:"theme"`
	Keymap   map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Field: FieldOptions{
			Placeholder: "Say something...",
			TextStyle: Style{
				Color:    "#B3B1AD",
				FontSize: 14,
				Height:   1.17,
			},
			PlaceholderStyle: Style{
				Color:    "#5C6773",
				FontSize: 14,
				Height:   1.17,
			},
		},
		Tokens: Tokens{
			MentionPrefix: "@",
			ChannelPrefix: "#",
			Separator:     " ",
			Style: Style{
				Color:    "#59C2FF",
				FontSize: 14,
				Height:   1.17,
			},
		},
		Mentions: []Entry{
			{Name: "Alice", Data: "<@1001>"},
			{Name: "Bob", Data: "<@1002>"},
			{Name: "Carol", Data: "<@1003>"},
		},
		Channels: []Entry{
			{Name: "general", Data: "<#2001>"},
			{Name: "random", Data: "<#2002>"},
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			SelectionForeground:  "#B3B1AD",
			SelectionBackground:  "#27425A",
		},
		Keymap: map[string]string{
			"left":        "move_left",
			"right":       "move_right",
			"home":        "line_start",
			"end":         "line_end",
			"shift+left":  "select_left",
			"shift+right": "select_right",
			"ctrl+a":      "select_all",
			"backspace":   "backspace",
			"del":         "delete_char",
			"enter":       "submit",
			"ctrl+t":      "insert_mention",
			"ctrl+g":      "insert_channel",
			"ctrl+l":      "clear",
			"esc":         "blur",
			"ctrl+c":      "quit",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if userCfg.Field.Text != "" {
		cfg.Field.Text = userCfg.Field.Text
	}
	if md.IsDefined("field", "placeholder") {
		cfg.Field.Placeholder = userCfg.Field.Placeholder
	}
	if userCfg.Field.MaxLength > 0 {
		cfg.Field.MaxLength = userCfg.Field.MaxLength
	}
	mergeStyle(&cfg.Field.TextStyle, userCfg.Field.TextStyle)
	mergeStyle(&cfg.Field.PlaceholderStyle, userCfg.Field.PlaceholderStyle)

	if md.IsDefined("tokens", "mention-prefix") {
		cfg.Tokens.MentionPrefix = userCfg.Tokens.MentionPrefix
	}
	if md.IsDefined("tokens", "channel-prefix") {
		cfg.Tokens.ChannelPrefix = userCfg.Tokens.ChannelPrefix
	}
	// An empty separator is meaningful: tokens without a trailing space.
	if md.IsDefined("tokens", "separator") {
		cfg.Tokens.Separator = userCfg.Tokens.Separator
	}
	mergeStyle(&cfg.Tokens.Style, userCfg.Tokens.Style)

	if len(userCfg.Mentions) > 0 {
		cfg.Mentions = userCfg.Mentions
	}
	if len(userCfg.Channels) > 0 {
		cfg.Channels = userCfg.Channels
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeStyle(dst *Style, src Style) {
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.Height > 0 {
		dst.Height = src.Height
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
}

// ParseColor converts "#RRGGBB", "#RGB" or "#AARRGGBB" into ARGB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	alpha := uint64(0xFF)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		alpha = a
		s = "#" + s[3:]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return uint32(alpha)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

// Resolve converts a configured style, keeping fallback values for anything
// unset or unparsable.
func (s Style) Resolve(fallback textfield.Style) textfield.Style {
	out := fallback
	if s.Color != "" {
		if c, err := ParseColor(s.Color); err == nil {
			out.Color = c
		}
	}
	if s.FontSize > 0 {
		out.FontSize = s.FontSize
	}
	if s.Height > 0 {
		out.Height = s.Height
	}
	return out
}

// Options builds the field options described by the configuration.
func (c Config) Options() textfield.Options {
	text := c.Field.TextStyle.Resolve(textfield.DefaultStyle())
	return textfield.Options{
		Text:             c.Field.Text,
		TextStyle:        text,
		Placeholder:      c.Field.Placeholder,
		PlaceholderStyle: c.Field.PlaceholderStyle.Resolve(text),
		TokenStyle:       c.Tokens.Style.Resolve(textfield.DefaultTokenStyle()),
		MaxLength:        c.Field.MaxLength,
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("RICHFIELD_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "richfield"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "richfield"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
