// Package input provides text input components for the tenant form.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth = 50
	minWidth     = 20
	charLimit    = 256
)

// Field wraps a bubbles textinput with a label and the key its value is
// submitted under.
type Field struct {
	key       string
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewField creates an unfocused field.
func NewField(key, label string, s *styles.Styles) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = label
	ti.CharLimit = charLimit
	ti.Width = defaultWidth

	return &Field{
		key:       key,
		label:     label,
		textinput: ti,
		styles:    s,
		width:     defaultWidth,
	}
}

// Update forwards a message to the text input.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label above the boxed input.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	box := f.styles.Input.Render(f.textinput.View())
	if f.Focused() {
		label = f.styles.FocusedLabel.Render("› " + f.label)
		box = f.styles.FocusedInput.Render(f.textinput.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box)
}

// Key returns the input key the value belongs to.
func (f *Field) Key() string {
	return f.key
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the border.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - 6
	if inputWidth < minWidth {
		inputWidth = minWidth
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}
