package layout

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

func newTestEngine(t *testing.T, layouts map[domain.ResourceID]string) *Engine {
	t.Helper()
	bundle, err := DefaultBundle()
	if err != nil {
		t.Fatalf("default bundle: %v", err)
	}
	for id, src := range layouts {
		bundle.Layouts[id] = []byte(src)
	}
	return NewEngine(bundle, logger.New(logger.LevelOff, nil))
}

func prepare(t *testing.T, tree domain.LayoutTree) {
	t.Helper()
	tree.AddStandardType(TypeText)
	if err := tree.AddFont("ABRIL", ResourceFontAbril34); err != nil {
		t.Fatalf("add font: %v", err)
	}
	if err := tree.AddFont("GOTHIC", ResourceFontGothic); err != nil {
		t.Fatalf("add font: %v", err)
	}
}

func TestParseDefaultLayout(t *testing.T) {
	engine := newTestEngine(t, nil)
	tree := engine.Create()
	defer tree.Destroy()
	prepare(t, tree)

	if err := tree.Parse(ResourceLayout); err != nil {
		t.Fatalf("parse: %v", err)
	}

	timeW, err := tree.FindByID("time")
	if err != nil {
		t.Fatalf("find time: %v", err)
	}
	if timeW.(*Text).Font().Face != FaceBlock {
		t.Fatalf("expected block face for time, got %q", timeW.(*Text).Font().Face)
	}

	textW, err := tree.FindByID("text")
	if err != nil {
		t.Fatalf("find text: %v", err)
	}
	if textW.Text() != "tickface" {
		t.Fatalf("expected initial text from layout, got %q", textW.Text())
	}

	if root := tree.Root(); root == nil || len(root.Children()) != 2 {
		t.Fatalf("expected root with 2 children, got %v", root)
	}
}

func TestFindByIDMissingIsFatal(t *testing.T) {
	engine := newTestEngine(t, nil)
	tree := engine.Create()
	defer tree.Destroy()
	prepare(t, tree)
	if err := tree.Parse(ResourceLayout); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if _, err := tree.FindByID("date"); !errors.Is(err, domain.ErrMissingWidget) {
		t.Fatalf("expected ErrMissingWidget, got %v", err)
	}
	if _, err := tree.FindByID("root"); !errors.Is(err, domain.ErrMissingWidget) {
		t.Fatalf("expected ErrMissingWidget for non-text node, got %v", err)
	}
}

func TestParseRequiresRegistration(t *testing.T) {
	engine := newTestEngine(t, nil)

	tree := engine.Create()
	if err := tree.Parse(ResourceLayout); !errors.Is(err, domain.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType without Text registered, got %v", err)
	}
	tree.Destroy()

	tree = engine.Create()
	tree.AddStandardType(TypeText)
	if err := tree.Parse(ResourceLayout); !errors.Is(err, domain.ErrMissingFont) {
		t.Fatalf("expected ErrMissingFont without fonts, got %v", err)
	}
	tree.Destroy()
}

func TestParseFaults(t *testing.T) {
	engine := newTestEngine(t, map[domain.ResourceID]string{
		"BROKEN":   `{"type": "Layer", "children": [`,
		"DUP":      `{"type":"Layer","children":[{"type":"Text","id":"a","font":"ABRIL"},{"type":"Text","id":"a","font":"ABRIL"}]}`,
		"BADFRAME": `{"type":"Layer","frame":[1,2,3]}`,
		"BADALIGN": `{"type":"Text","font":"ABRIL","alignment":"justify"}`,
	})

	tests := []struct {
		resource domain.ResourceID
		want     error
	}{
		{"BROKEN", domain.ErrLayoutParse},
		{"DUP", domain.ErrLayoutParse},
		{"BADFRAME", domain.ErrLayoutParse},
		{"BADALIGN", domain.ErrLayoutParse},
		{"NOPE", domain.ErrUnknownResource},
	}
	for _, tt := range tests {
		tree := engine.Create()
		prepare(t, tree)
		if err := tree.Parse(tt.resource); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.resource, tt.want, err)
		}
		tree.Destroy()
	}
}

func TestAddFontUnknownResource(t *testing.T) {
	engine := newTestEngine(t, nil)
	tree := engine.Create()
	defer tree.Destroy()
	if err := tree.AddFont("ABRIL", "FONT_MISSING"); !errors.Is(err, domain.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestEngineCountsLiveTrees(t *testing.T) {
	engine := newTestEngine(t, nil)
	a := engine.Create()
	b := engine.Create()
	if engine.Live() != 2 {
		t.Fatalf("expected 2 live trees, got %d", engine.Live())
	}
	a.Destroy()
	a.Destroy() // ignored
	b.Destroy()
	if engine.Live() != 0 {
		t.Fatalf("expected 0 live trees, got %d", engine.Live())
	}
	if err := a.Parse(ResourceLayout); !errors.Is(err, domain.ErrTreeDestroyed) {
		t.Fatalf("expected ErrTreeDestroyed, got %v", err)
	}
}

func TestSetTextCopies(t *testing.T) {
	w := &Text{}
	buf := []byte("10:10")
	w.SetText(buf)
	buf[0] = '9'
	if w.Text() != "10:10" {
		t.Fatalf("widget text aliased caller buffer: %q", w.Text())
	}
}
