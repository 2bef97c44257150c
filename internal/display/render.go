package display

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/layout"
	"github.com/hammamikhairi/tickface/internal/theme"
)

// Default surface size in cells, used when no layer gives a frame.
const (
	DefaultWidth  = 36
	DefaultHeight = 11
)

type cell struct {
	r     rune
	fg    domain.Color
	inked bool
}

type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, fg domain.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, fg: fg, inked: r != ' '}
}

// Render draws the window's children over its background and returns the
// styled frame, one line per row.
func Render(w *Window) string {
	children := w.Children()
	width, height := DefaultWidth, DefaultHeight
	for _, n := range children {
		if l, ok := n.(*layout.Layer); ok && l.Frame().W > 0 && l.Frame().H > 0 {
			width, height = l.Frame().W, l.Frame().H
			break
		}
	}

	c := newCanvas(width, height)
	for _, n := range children {
		draw(c, n, 0, 0)
	}
	return c.styled(w.BackgroundColor())
}

func draw(c *canvas, n domain.Node, ox, oy int) {
	switch v := n.(type) {
	case *layout.Layer:
		f := v.Frame()
		for _, child := range v.Children() {
			draw(c, child, ox+f.X, oy+f.Y)
		}
	case *layout.Text:
		drawText(c, v, ox, oy)
	}
}

func drawText(c *canvas, t *layout.Text, ox, oy int) {
	f := t.Frame()
	text := t.Text()
	fg := t.TextColor()

	var rows []string
	switch t.Font().Face {
	case layout.FaceBlock:
		lines := BlockLines(text)
		rows = lines[:]
	default:
		rows = []string{text}
	}

	for dy, row := range rows {
		if dy >= f.H {
			break
		}
		runes := []rune(row)
		x := ox + f.X + offset(t.Alignment(), f.W, len(runes))
		for dx, r := range runes {
			if dx >= f.W {
				break
			}
			c.set(x+dx, oy+f.Y+dy, r, fg)
		}
	}
}

func offset(a layout.Align, frame, content int) int {
	switch a {
	case layout.AlignCenter:
		if frame > content {
			return (frame - content) / 2
		}
	case layout.AlignRight:
		if frame > content {
			return frame - content
		}
	}
	return 0
}

// styled emits each row as runs of equal foreground color. Blank cells join
// whichever run they fall in.
func (c *canvas) styled(bg domain.Color) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(theme.Hex(bg)))

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		run.Reset()
		var fg domain.Color
		haveFg := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if haveFg {
				style = style.Foreground(lipgloss.Color(theme.Hex(fg)))
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.inked {
				if haveFg && cl.fg != fg {
					flush()
				}
				fg, haveFg = cl.fg, true
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// Center pads each line of frame to sit in the middle of width columns.
func Center(frame string, width int) string {
	if width <= lipgloss.Width(frame) {
		return frame
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, frame)
}

// TermWidth returns the current terminal column count, or 80 as fallback.
func TermWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
