package display

// GlyphHeight is the row count of the block face.
const GlyphHeight = 5

const glyphWidth = 3

// blockGlyphs draws digits and the colon five rows tall.
var blockGlyphs = map[byte][GlyphHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "█", " ", "█", " "},
	' ': {"   ", "   ", "   ", "   ", "   "},
	'-': {"   ", "   ", "███", "   ", "   "},
}

// BlockLines renders text in the block face. Characters without a glyph
// are drawn as blanks. Glyphs are separated by one column.
func BlockLines(text string) [GlyphHeight]string {
	var rows [GlyphHeight][]rune
	for i := 0; i < len(text); i++ {
		g, ok := blockGlyphs[text[i]]
		if !ok {
			g = blockGlyphs[' ']
		}
		for r := 0; r < GlyphHeight; r++ {
			if i > 0 {
				rows[r] = append(rows[r], ' ')
			}
			rows[r] = append(rows[r], []rune(g[r])...)
		}
	}
	var out [GlyphHeight]string
	for r := range rows {
		out[r] = string(rows[r])
	}
	return out
}

// BlockWidth returns the width in cells of text in the block face.
func BlockWidth(text string) int {
	w := 0
	for i := 0; i < len(text); i++ {
		if i > 0 {
			w++
		}
		if text[i] == ':' {
			w++
			continue
		}
		w += glyphWidth
	}
	return w
}
