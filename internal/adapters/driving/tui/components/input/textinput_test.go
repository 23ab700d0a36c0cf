package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessionInput(t *testing.T) {
	in := NewAccessionInput(nil)

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.Equal(t, 50, in.Width())
}

func TestAccessionInput_ValueIsTrimmed(t *testing.T) {
	in := NewAccessionInput(nil)

	in.SetValue("  P02945 ")

	assert.Equal(t, "P02945", in.Value())
}

func TestAccessionInput_Typing(t *testing.T) {
	in := NewAccessionInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Q9")})

	assert.Equal(t, "Q9", in.Value())
}

func TestAccessionInput_FocusBlurReset(t *testing.T) {
	in := NewAccessionInput(nil)
	in.SetValue("BACR_HALSA")

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestAccessionInput_SetWidth(t *testing.T) {
	in := NewAccessionInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())

	in.SetWidth(10)
	assert.Equal(t, 10, in.Width())
}

func TestAccessionInput_View(t *testing.T) {
	assert.Contains(t, NewAccessionInput(nil).View(), "Protein:")
}
