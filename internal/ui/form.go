package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user leaves a form with esc or ctrl+c.
var ErrAborted = errors.New("aborted by user")

// interceptedKey tracks the last key that triggered an abort (esc vs ctrl+c).
var interceptedKey string

// formFilter remembers which key aborted a form.
func formFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form with the shared theme, key map and abort handling.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	err := f.WithTheme(Theme()).
		WithKeyMap(KeyMap()).
		WithProgramOptions(tea.WithFilter(formFilter)).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// AbortKey reports the key that aborted the last form, if any
func AbortKey() string {
	return interceptedKey
}

// ConfirmWrite previews data as YAML and asks whether to write it to path.
// overwrite changes the question for files that already exist.
func ConfirmWrite(path string, data []byte, overwrite bool) (bool, error) {
	title := "Write configuration?"
	if overwrite {
		title = fmt.Sprintf("%s exists. Overwrite?", path)
	}

	confirmed := !overwrite
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Configuration Preview").
				Description(fmt.Sprintf("\n%s\n\n", HighlightYAML(string(data)))),

			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
