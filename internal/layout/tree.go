// Package layout builds widget trees from JSON layout resources.
//
// A tree must be told which widget types and fonts it may use before it
// parses a layout; anything else in the layout is a configuration fault.
package layout

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Standard widget types.
const (
	TypeLayer = "Layer" // always available
	TypeText  = "Text"
)

// Compile-time interface checks.
var (
	_ domain.LayoutEngine = (*Engine)(nil)
	_ domain.LayoutTree   = (*Tree)(nil)
)

// Engine creates trees over one resource bundle and counts live trees.
type Engine struct {
	bundle *Bundle
	log    *logger.Logger
	live   atomic.Int64
}

// NewEngine creates a layout engine over bundle.
func NewEngine(bundle *Bundle, log *logger.Logger) *Engine {
	return &Engine{bundle: bundle, log: log}
}

// Create returns an empty tree. It must be released with Destroy.
func (e *Engine) Create() domain.LayoutTree {
	n := e.live.Add(1)
	e.log.Debug("layout tree created (live=%d)", n)
	return &Tree{
		engine: e,
		types:  map[string]bool{TypeLayer: true},
		fonts:  make(map[string]Font),
		index:  make(map[string]domain.Node),
	}
}

// Live returns the number of trees created and not yet destroyed.
func (e *Engine) Live() int {
	return int(e.live.Load())
}

// Tree is one parsed layout.
type Tree struct {
	engine    *Engine
	types     map[string]bool
	fonts     map[string]Font
	root      domain.Node
	index     map[string]domain.Node
	destroyed bool
}

// AddStandardType allows kind in layouts parsed by this tree.
func (t *Tree) AddStandardType(kind string) {
	t.types[kind] = true
}

// AddFont makes the font resource available to layouts under name.
func (t *Tree) AddFont(name string, resource domain.ResourceID) error {
	face, ok := t.engine.bundle.Fonts[resource]
	if !ok {
		return fmt.Errorf("font %s (%s): %w", name, resource, domain.ErrUnknownResource)
	}
	t.fonts[name] = Font{Name: name, Resource: resource, Face: face}
	return nil
}

// nodeSpec is the JSON shape of a layout node.
type nodeSpec struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Frame     []int      `json:"frame"`
	Font      string     `json:"font"`
	Text      string     `json:"text"`
	Alignment string     `json:"alignment"`
	Children  []nodeSpec `json:"children"`
}

// Parse builds the tree from a layout resource. A tree parses once.
func (t *Tree) Parse(resource domain.ResourceID) error {
	if t.destroyed {
		return domain.ErrTreeDestroyed
	}
	if t.root != nil {
		return fmt.Errorf("%s: tree already parsed: %w", resource, domain.ErrLayoutParse)
	}
	data, ok := t.engine.bundle.Layouts[resource]
	if !ok {
		return fmt.Errorf("layout %s: %w", resource, domain.ErrUnknownResource)
	}

	var ns nodeSpec
	if err := json.Unmarshal(data, &ns); err != nil {
		return fmt.Errorf("layout %s: %w: %v", resource, domain.ErrLayoutParse, err)
	}

	root, err := t.build(ns, "/")
	if err != nil {
		clear(t.index)
		return fmt.Errorf("layout %s: %w", resource, err)
	}
	t.root = root
	t.engine.log.Debug("parsed layout %s (%d identified nodes)", resource, len(t.index))
	return nil
}

func (t *Tree) build(ns nodeSpec, path string) (domain.Node, error) {
	if !t.types[ns.Type] {
		return nil, fmt.Errorf("%s: type %q: %w", path, ns.Type, domain.ErrUnknownType)
	}
	frame, err := parseFrame(ns.Frame)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var node domain.Node
	switch ns.Type {
	case TypeLayer:
		layer := &Layer{id: ns.ID, frame: frame}
		for i, child := range ns.Children {
			c, err := t.build(child, fmt.Sprintf("%s%d/", path, i))
			if err != nil {
				return nil, err
			}
			layer.children = append(layer.children, c)
		}
		node = layer
	case TypeText:
		font, ok := t.fonts[ns.Font]
		if !ok {
			return nil, fmt.Errorf("%s: font %q: %w", path, ns.Font, domain.ErrMissingFont)
		}
		align, err := parseAlign(ns.Alignment)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		text := &Text{id: ns.ID, frame: frame, font: font, align: align, color: domain.ColorWhite}
		text.SetText([]byte(ns.Text))
		node = text
	default:
		return nil, fmt.Errorf("%s: type %q has no builder: %w", path, ns.Type, domain.ErrUnknownType)
	}

	if ns.ID != "" {
		if _, dup := t.index[ns.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q: %w", path, ns.ID, domain.ErrLayoutParse)
		}
		t.index[ns.ID] = node
	}
	return node, nil
}

// FindByID returns the text widget with the given identifier. A missing
// identifier is a configuration fault.
func (t *Tree) FindByID(id string) (domain.TextWidget, error) {
	node, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("widget %q: %w", id, domain.ErrMissingWidget)
	}
	w, ok := node.(domain.TextWidget)
	if !ok {
		return nil, fmt.Errorf("widget %q is not a text widget: %w", id, domain.ErrMissingWidget)
	}
	return w, nil
}

// Root returns the root node, or nil before Parse.
func (t *Tree) Root() domain.Node {
	return t.root
}

// Destroy releases the tree. Destroying twice is logged and ignored.
func (t *Tree) Destroy() {
	if t.destroyed {
		t.engine.log.Warn("layout tree destroyed twice")
		return
	}
	t.destroyed = true
	t.root = nil
	clear(t.index)
	n := t.engine.live.Add(-1)
	t.engine.log.Debug("layout tree destroyed (live=%d)", n)
}

func parseFrame(v []int) (Rect, error) {
	switch len(v) {
	case 0:
		return Rect{}, nil
	case 4:
		if v[2] < 0 || v[3] < 0 {
			return Rect{}, fmt.Errorf("negative frame size %v: %w", v, domain.ErrLayoutParse)
		}
		return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
	}
	return Rect{}, fmt.Errorf("frame needs 4 values, got %v: %w", v, domain.ErrLayoutParse)
}

func parseAlign(s string) (Align, error) {
	switch s {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("alignment %q: %w", s, domain.ErrLayoutParse)
}
