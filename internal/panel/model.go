package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/door-guard/internal/hmi"
)

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("120")).
			Padding(0, 1)

	lampOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	lampOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

const helpText = "0-9 digits  = or enter submit  + open  - change  esc quit"

// Model is the bubbletea model of the panel.
type Model struct {
	panel *Panel
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Keys go to the keypad queue, refreshes only redraw.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	msg, ok := message.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.panel.keys.Press(hmi.KeySubmit)
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if k, ok := keyForRune(r); ok {
				m.panel.keys.Press(k)
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(displayStyle.Render(strings.Join(m.panel.screen.Lines(), "\n")))
	b.WriteString("\n")

	if m.panel.lamp.Lit() {
		b.WriteString(lampOnStyle.Render("● LOCK"))
	} else {
		b.WriteString(lampOffStyle.Render("○ lock"))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText))
	b.WriteString("\n")

	return b.String()
}

func keyForRune(r rune) (hmi.Key, bool) {
	switch {
	case r >= '0' && r <= '9':
		return hmi.Key(r - '0'), true
	case r == rune(hmi.KeySubmit):
		return hmi.KeySubmit, true
	case r == rune(hmi.KeyPlus):
		return hmi.KeyPlus, true
	case r == rune(hmi.KeyMinus):
		return hmi.KeyMinus, true
	default:
		return 0, false
	}
}
