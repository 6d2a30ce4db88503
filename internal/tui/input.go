package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

func newPathInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "path/to/file.pdf"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

// newPasswordInput masks every typed character.
func newPasswordInput() textinput.Model {
	ti := newPathInput("password: ")
	ti.Placeholder = ""
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}
