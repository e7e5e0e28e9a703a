package textfield

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// Offsets are UTF-16 code units, the unit the host string type indexes by.

func encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// CharCount returns the number of user-perceived characters in s.
func CharCount(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// trimmedUnitLen measures s after trimming surrounding horizontal
// whitespace. Newlines are kept, matching the host's whitespace set.
func trimmedUnitLen(s string) int {
	return UnitLen(strings.TrimFunc(s, isBlank))
}

func isBlank(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

// ClusterBefore returns the code-unit length of the grapheme cluster that
// ends at pos in s, or 0 at the start of s.
func ClusterBefore(s string, pos int) int {
	last := 0
	off := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n := UnitLen(g.Str())
		if off+n > pos {
			break
		}
		off += n
		last = n
		if off == pos {
			return last
		}
	}
	return last
}

// ClusterAfter returns the code-unit length of the grapheme cluster that
// starts at pos in s, or 0 at the end of s.
func ClusterAfter(s string, pos int) int {
	off := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n := UnitLen(g.Str())
		if off >= pos {
			return n
		}
		off += n
	}
	return 0
}
