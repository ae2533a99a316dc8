package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramDisplay_Show(t *testing.T) {
	program := tea.NewProgram(
		NewModel(testMapURL, (&recordingOpener{}).open, nil),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)

	go func() {
		ProgramDisplay{Program: program}.Show(testPanel())
		program.Quit()
	}()

	final, err := program.Run()
	require.NoError(t, err)

	m, ok := final.(Model)
	require.True(t, ok)
	assert.True(t, m.hasPanel)
	assert.Equal(t, testPanel(), m.panel)
}
