// Package display draws the watch face in the terminal using Bubble Tea.
//
// The event loop mutates a [Window] and renders it into a frame string
// after each dispatch; the [UI] only shows the latest frame. Other output
// (feedback notices) is printed above the face via Program.Printf so
// concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))
)

// KeyMap holds the face's key bindings.
type KeyMap struct {
	ToggleFormat key.Binding
	ToggleInvert key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleFormat: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "12/24h"),
		),
		ToggleInvert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invert"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) help() string {
	var parts []string
	for _, b := range []key.Binding{k.ToggleFormat, k.ToggleInvert, k.Quit} {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, helpDescStyle.Render(" • "))
}

// Actions are invoked from key presses. They run on the UI goroutine and
// must only post work elsewhere.
type Actions struct {
	ToggleFormat func()
	ToggleInvert func()
}

// UI shows rendered frames through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may call
// [UI.ShowFrame] and [UI.Printf] at any time.
type UI struct {
	program *tea.Program
	keys    KeyMap
	actions Actions
	frame   atomic.Pointer[string]
	readyCh chan struct{}
	quitCh  chan struct{}
	ready   atomic.Bool
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(actions Actions) *UI {
	u := &UI{
		keys:    DefaultKeyMap(),
		actions: actions,
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
	empty := ""
	u.frame.Store(&empty)
	return u
}

// ShowFrame replaces the displayed frame. Thread-safe and non-blocking.
func (u *UI) ShowFrame(frame string) {
	u.frame.Store(&frame)
	if u.ready.Load() && !u.done.Load() {
		go u.program.Send(frameMsg{})
	}
}

// Frame returns the latest frame.
func (u *UI) Frame() string { return *u.frame.Load() }

// Printf prints a notice above the face. Thread-safe. If the program is
// not running, falls back to fmt.Printf.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.ready.Load() && !u.done.Load() {
		u.program.Println(noticeStyle.Render(fmt.Sprintf(format, a...)))
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	m := model{ui: u, width: TermWidth()}
	u.program = tea.NewProgram(m, tea.WithAltScreen())
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ui    *UI
	width int
}

type frameMsg struct{}

type readyMsg struct{}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		m.ui.ready.Store(true)
		close(m.ui.readyCh)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.ui.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.ui.keys.ToggleFormat):
			if fn := m.ui.actions.ToggleFormat; fn != nil {
				fn()
			}
		case key.Matches(msg, m.ui.keys.ToggleInvert):
			if fn := m.ui.actions.ToggleInvert; fn != nil {
				fn()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case frameMsg:
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(Center(m.ui.Frame(), m.width))
	b.WriteString("\n\n")
	b.WriteString(Center(m.ui.keys.help(), m.width))
	return b.String()
}
