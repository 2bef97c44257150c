package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/layout"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// mockHandlers records window lifecycle calls.
type mockHandlers struct {
	loadErr error
	loads   int
	unloads int
}

func (m *mockHandlers) Load(domain.Window) error {
	m.loads++
	return m.loadErr
}

func (m *mockHandlers) Unload(domain.Window) { m.unloads++ }

func TestStackPushDestroy(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	stack := NewStack(log)
	h := &mockHandlers{}
	w := NewWindow("face", h, log)

	if err := stack.Push(w); err != nil {
		t.Fatalf("push: %v", err)
	}
	if h.loads != 1 || !w.Loaded() || stack.Top() != w {
		t.Fatal("expected window loaded and on top")
	}
	if err := stack.Push(w); !errors.Is(err, domain.ErrAlreadyLoaded) {
		t.Fatalf("expected ErrAlreadyLoaded, got %v", err)
	}

	stack.Destroy(w)
	if h.unloads != 1 || w.Loaded() || stack.Depth() != 0 {
		t.Fatal("expected window unloaded and removed")
	}

	stack.Destroy(w)
	if h.unloads != 1 {
		t.Fatal("destroying an unloaded window ran Unload again")
	}
}

func TestStackPushLoadFailure(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	stack := NewStack(log)
	h := &mockHandlers{loadErr: domain.ErrMissingWidget}
	w := NewWindow("face", h, log)

	err := stack.Push(w)
	if !errors.Is(err, domain.ErrMissingWidget) {
		t.Fatalf("expected ErrMissingWidget, got %v", err)
	}
	if w.Loaded() || stack.Depth() != 0 {
		t.Fatal("failed load must not show the window")
	}
	stack.Destroy(w)
	if h.unloads != 0 {
		t.Fatal("Unload ran for a window that never loaded")
	}
}

func TestStackPushNil(t *testing.T) {
	stack := NewStack(logger.New(logger.LevelOff, nil))
	if err := stack.Push(nil); !errors.Is(err, domain.ErrWindowNotCreated) {
		t.Fatalf("expected ErrWindowNotCreated, got %v", err)
	}
}

func TestWindowChildren(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	w := NewWindow("face", nil, log)
	a, b := &layout.Layer{}, &layout.Layer{}

	w.AddChild(a)
	w.AddChild(b)
	w.RemoveChild(a)
	if got := w.Children(); len(got) != 1 || got[0] != domain.Node(b) {
		t.Fatalf("unexpected children %v", got)
	}
	w.SetBackgroundColor(domain.ColorRed)
	if w.BackgroundColor() != domain.ColorRed {
		t.Fatal("background not stored")
	}
}

func TestBlockLines(t *testing.T) {
	lines := BlockLines("1:0")
	want := [GlyphHeight]string{
		" ██   ███",
		"  █ █ █ █",
		"  █   █ █",
		"  █ █ █ █",
		"  █   ███",
	}
	if lines != want {
		t.Fatalf("unexpected glyphs:\n%s", strings.Join(lines[:], "\n"))
	}
	if got := BlockWidth("1:0"); got != len([]rune(want[0])) {
		t.Fatalf("BlockWidth = %d, want %d", got, len([]rune(want[0])))
	}
	if got := BlockWidth("12:34"); got != 17 {
		t.Fatalf("BlockWidth(12:34) = %d, want 17", got)
	}
}

func TestRenderDefaultLayout(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	bundle, err := layout.DefaultBundle()
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	tree := layout.NewEngine(bundle, log).Create()
	defer tree.Destroy()
	tree.AddStandardType(layout.TypeText)
	if err := tree.AddFont("ABRIL", layout.ResourceFontAbril34); err != nil {
		t.Fatal(err)
	}
	if err := tree.AddFont("GOTHIC", layout.ResourceFontGothic); err != nil {
		t.Fatal(err)
	}
	if err := tree.Parse(layout.ResourceLayout); err != nil {
		t.Fatalf("parse: %v", err)
	}
	timeText, err := tree.FindByID("time")
	if err != nil {
		t.Fatal(err)
	}
	timeText.SetText([]byte("13:07"))

	w := NewWindow("face", nil, log)
	w.AddChild(tree.Root())
	frame := Render(w)

	rows := strings.Split(frame, "\n")
	if len(rows) != DefaultHeight {
		t.Fatalf("expected %d rows, got %d", DefaultHeight, len(rows))
	}
	for _, glyph := range BlockLines("13:07") {
		if !strings.Contains(frame, glyph) {
			t.Fatalf("frame missing glyph row %q:\n%s", glyph, frame)
		}
	}
	if !strings.Contains(frame, "tickface") {
		t.Fatalf("frame missing label:\n%s", frame)
	}
}

func TestRenderClipsToFrame(t *testing.T) {
	c := newCanvas(4, 1)
	c.set(-1, 0, 'x', domain.ColorWhite)
	c.set(4, 0, 'x', domain.ColorWhite)
	c.set(0, 1, 'x', domain.ColorWhite)
	for _, cl := range c.cells {
		if cl.inked {
			t.Fatal("out-of-range write landed on the canvas")
		}
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		align          layout.Align
		frame, content int
		want           int
	}{
		{layout.AlignLeft, 10, 4, 0},
		{layout.AlignCenter, 10, 4, 3},
		{layout.AlignRight, 10, 4, 6},
		{layout.AlignCenter, 4, 10, 0},
	}
	for _, tt := range tests {
		if got := offset(tt.align, tt.frame, tt.content); got != tt.want {
			t.Errorf("offset(%d, %d, %d) = %d, want %d", tt.align, tt.frame, tt.content, got, tt.want)
		}
	}
}

func TestUIFrameBeforeRun(t *testing.T) {
	u := NewUI(Actions{})
	if u.Frame() != "" {
		t.Fatal("expected empty initial frame")
	}
	u.ShowFrame("12:34")
	if u.Frame() != "12:34" {
		t.Fatalf("expected stored frame, got %q", u.Frame())
	}
}
