package display

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Compile-time interface check.
var _ domain.Window = (*Window)(nil)

// Window is the top-level drawing surface. It is mutated on the event loop
// and read by the renderer, so every accessor takes the lock.
type Window struct {
	name     string
	handlers domain.WindowHandlers
	log      *logger.Logger

	mu       sync.RWMutex
	bg       domain.Color
	children []domain.Node
	loaded   bool
}

// NewWindow creates an unloaded window. handlers receive Load on push and
// Unload on destroy.
func NewWindow(name string, handlers domain.WindowHandlers, log *logger.Logger) *Window {
	return &Window{
		name:     name,
		handlers: handlers,
		log:      log,
		bg:       domain.ColorBlack,
	}
}

// Name returns the window name.
func (w *Window) Name() string { return w.name }

// SetBackgroundColor sets the fill drawn behind all children.
func (w *Window) SetBackgroundColor(c domain.Color) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bg = c
}

// BackgroundColor returns the current fill.
func (w *Window) BackgroundColor() domain.Color {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bg
}

// AddChild attaches n on top of existing children.
func (w *Window) AddChild(n domain.Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.children = append(w.children, n)
}

// RemoveChild detaches n if attached.
func (w *Window) RemoveChild(n domain.Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.children {
		if c == n {
			w.children = append(w.children[:i], w.children[i+1:]...)
			return
		}
	}
}

// Children returns a copy of the attached nodes in draw order.
func (w *Window) Children() []domain.Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.Node(nil), w.children...)
}

// Loaded reports whether the window is on a stack.
func (w *Window) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

func (w *Window) setLoaded(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loaded = v
}

// Stack is the window stack. The top window is the one shown.
type Stack struct {
	mu      sync.Mutex
	windows []*Window
	log     *logger.Logger
}

// NewStack creates an empty window stack.
func NewStack(log *logger.Logger) *Stack {
	return &Stack{log: log}
}

// Push runs the window's Load handler and, if it succeeds, shows the
// window. A failed load leaves the stack unchanged.
func (s *Stack) Push(w *Window) error {
	if w == nil {
		return domain.ErrWindowNotCreated
	}
	if w.Loaded() {
		return fmt.Errorf("window %s: %w", w.name, domain.ErrAlreadyLoaded)
	}
	if w.handlers != nil {
		if err := w.handlers.Load(w); err != nil {
			return fmt.Errorf("window %s: load: %w", w.name, err)
		}
	}
	w.setLoaded(true)

	s.mu.Lock()
	s.windows = append(s.windows, w)
	depth := len(s.windows)
	s.mu.Unlock()

	s.log.Debug("window %s pushed (depth=%d)", w.name, depth)
	return nil
}

// Destroy removes w from the stack and runs its Unload handler. Destroying
// a window that was never pushed is a no-op.
func (s *Stack) Destroy(w *Window) {
	if w == nil || !w.Loaded() {
		return
	}

	s.mu.Lock()
	for i, o := range s.windows {
		if o == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	w.setLoaded(false)
	if w.handlers != nil {
		w.handlers.Unload(w)
	}
	s.log.Debug("window %s destroyed", w.name)
}

// Top returns the visible window, or nil.
func (s *Stack) Top() *Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Depth returns the number of pushed windows.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
