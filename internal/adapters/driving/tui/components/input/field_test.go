package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/styles"
)

func TestNewField(t *testing.T) {
	f := NewField("email", "E-mail", styles.DefaultStyles())

	require.NotNil(t, f)
	assert.Equal(t, "email", f.Key())
	assert.Equal(t, "E-mail", f.Label())
	assert.Equal(t, "", f.Value())
	assert.False(t, f.Focused())
}

func TestNewField_NilStyles(t *testing.T) {
	f := NewField("email", "E-mail", nil)

	assert.NotNil(t, f.styles)
}

func TestField_UpdateWhenFocused(t *testing.T) {
	f := NewField("email", "E-mail", nil)
	f.Focus()

	updated, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a@b")})

	assert.Same(t, f, updated)
	assert.Equal(t, "a@b", f.Value())
}

func TestField_UpdateWhenBlurredIgnoresKeys(t *testing.T) {
	f := NewField("email", "E-mail", nil)

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, "", f.Value())
}

func TestField_FocusBlur(t *testing.T) {
	f := NewField("email", "E-mail", nil)

	f.Focus()
	assert.True(t, f.Focused())
	assert.Contains(t, f.View(), "› E-mail")

	f.Blur()
	assert.False(t, f.Focused())
	assert.NotContains(t, f.View(), "›")
}

func TestField_SetValue(t *testing.T) {
	f := NewField("email", "E-mail", nil)

	f.SetValue("maria@example.com")

	assert.Equal(t, "maria@example.com", f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField("email", "E-mail", nil)

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())
	assert.Equal(t, 94, f.textinput.Width)

	f.SetWidth(5)
	assert.Equal(t, minWidth, f.textinput.Width)
}
