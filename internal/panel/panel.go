package panel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/door-guard/internal/hmi"
)

// keyBuffer is how many presses may wait for the phase machine.
const keyBuffer = 32

// Panel owns the in-memory devices and the program that renders them.
type Panel struct {
	screen  *hmi.Screen
	keys    *hmi.KeyQueue
	lamp    *hmi.Lamp
	program atomic.Pointer[tea.Program]
}

// refreshMsg asks the program to redraw after a device changed.
type refreshMsg struct{}

// New returns a panel with a blank screen and the lamp off.
func New() *Panel {
	p := &Panel{
		keys: hmi.NewKeyQueue(keyBuffer),
		lamp: new(hmi.Lamp),
	}
	p.screen = hmi.NewScreen(p.refresh)

	return p
}

// Keypad returns the keypad fed by the terminal.
func (p *Panel) Keypad() hmi.Keypad {
	return p.keys
}

// Display returns the rendered display.
func (p *Panel) Display() hmi.Display {
	return p.screen
}

// Indicator returns the rendered lockout lamp.
func (p *Panel) Indicator() hmi.Indicator {
	return indicator{panel: p}
}

// Model returns the bubbletea model of the panel.
func (p *Panel) Model() Model {
	return Model{panel: p}
}

// Run shows the panel until the operator quits or ctx is done.
func (p *Panel) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(p.Model(), opts...)

	p.program.Store(program)
	defer p.program.Store(nil)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("run panel: %w", err)
	}

	return nil
}

func (p *Panel) refresh() {
	if program := p.program.Load(); program != nil {
		program.Send(refreshMsg{})
	}
}

// indicator redraws the panel on every toggle.
type indicator struct {
	panel *Panel
}

func (i indicator) Toggle() {
	i.panel.lamp.Toggle()
	i.panel.refresh()
}
