package layout

import "github.com/hammamikhairi/tickface/internal/domain"

// Rect is a frame in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Align is the horizontal text alignment inside a frame.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font is a registered font: the name layouts refer to and the face the
// display draws it with.
type Font struct {
	Name     string
	Resource domain.ResourceID
	Face     string
}

// Compile-time interface checks.
var (
	_ domain.Node       = (*Layer)(nil)
	_ domain.TextWidget = (*Text)(nil)
)

// Layer is a container node.
type Layer struct {
	id       string
	frame    Rect
	children []domain.Node
}

// ID returns the node identifier ("" when the layout gave none).
func (l *Layer) ID() string { return l.id }

// Children returns the child nodes in draw order.
func (l *Layer) Children() []domain.Node { return l.children }

// Frame returns the layer's frame.
func (l *Layer) Frame() Rect { return l.frame }

// Text is a text widget. Its text lives in widget-owned storage: SetText
// copies into it, reusing capacity, so callers keep ownership of their
// buffers.
type Text struct {
	id    string
	frame Rect
	font  Font
	align Align
	text  []byte
	color domain.Color
}

func (t *Text) ID() string              { return t.id }
func (t *Text) Children() []domain.Node { return nil }
func (t *Text) Frame() Rect             { return t.frame }
func (t *Text) Font() Font              { return t.font }
func (t *Text) Alignment() Align        { return t.align }
func (t *Text) Text() string            { return string(t.text) }
func (t *Text) TextColor() domain.Color { return t.color }

// SetText replaces the widget's text with a copy of text.
func (t *Text) SetText(text []byte) { t.text = append(t.text[:0], text...) }

// SetTextColor sets the foreground color.
func (t *Text) SetTextColor(c domain.Color) { t.color = c }
