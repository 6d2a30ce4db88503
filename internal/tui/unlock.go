package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

type unlockField int

const (
	fieldNone unlockField = iota
	fieldPath
	fieldPassword
)

// Unlock is the interactive view for the unlock workflow.
type Unlock struct {
	ctx    context.Context
	wf     *workflow.Unlock
	opts   Options
	feed   *feed
	cancel func()

	keys      unlockKeyMap
	inputKeys inputKeyMap
	help      help.Model

	snap   workflow.Snapshot
	input  textinput.Model
	field  unlockField
	status string
}

// NewUnlock creates the unlock view over wf.
func NewUnlock(ctx context.Context, wf *workflow.Unlock, opts Options) *Unlock {
	u := &Unlock{
		ctx:       ctx,
		wf:        wf,
		opts:      opts,
		feed:      newFeed(),
		keys:      newUnlockKeyMap(),
		inputKeys: newInputKeyMap(),
		help:      help.New(),
		snap:      wf.Snapshot(),
	}
	u.cancel = wf.Subscribe(u.feed.push)
	u.syncKeys()
	return u
}

func (u *Unlock) Init() tea.Cmd {
	return u.feed.next()
}

func (u *Unlock) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if u.field != fieldNone {
			cmd = u.handleInput(msg)
		} else {
			cmd = u.handleKey(msg)
		}
	case changedMsg:
		cmd = u.feed.next()
	case intakeMsg:
		if msg.err != nil {
			u.status = "error: " + msg.err.Error()
			break
		}
		if f, ok := u.wf.Set(msg.inputs...); ok {
			u.status = "staged " + f.Name
		}
	case submitDoneMsg:
		if msg.err != nil {
			u.status = msg.err.Error()
		}
	case savedMsg:
		u.status = savedStatus(msg)
	}

	u.snap = u.wf.Snapshot()
	u.syncKeys()
	return u, cmd
}

func (u *Unlock) handleKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, u.keys.Quit):
		u.cancel()
		return tea.Quit
	case key.Matches(k, u.keys.Help):
		u.help.ShowAll = !u.help.ShowAll
	case key.Matches(k, u.keys.File):
		u.field = fieldPath
		u.input = newPathInput("file path: ")
	case key.Matches(k, u.keys.Password):
		u.field = fieldPassword
		u.input = newPasswordInput()
	case key.Matches(k, u.keys.Clear):
		u.wf.ClearFile()
	case key.Matches(k, u.keys.Submit):
		if u.snap.Busy {
			u.status = "a submission is already in flight"
			return nil
		}
		u.status = ""
		return func() tea.Msg {
			return submitDoneMsg{err: u.wf.Submit(u.ctx)}
		}
	case key.Matches(k, u.keys.Save):
		return saveResult(u.ctx, u.wf.Viewer(), u.opts.SaveDir)
	}
	return nil
}

func (u *Unlock) handleInput(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, u.inputKeys.Cancel):
		u.field = fieldNone
		return nil
	case key.Matches(k, u.inputKeys.Confirm):
		field := u.field
		u.field = fieldNone
		return u.commit(field, u.input.Value())
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(k)
	return cmd
}

func (u *Unlock) commit(field unlockField, value string) tea.Cmd {
	switch field {
	case fieldPassword:
		u.wf.SetPassword(value)
	case fieldPath:
		if path := strings.TrimSpace(value); path != "" {
			return intake(u.ctx, []string{path})
		}
	}
	return nil
}

func (u *Unlock) syncKeys() {
	u.keys.Clear.SetEnabled(len(u.snap.Files) > 0)
	u.keys.Save.SetEnabled(u.snap.Result != nil)
}

func (u *Unlock) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Unlock PDF"))
	b.WriteString("\n\n")

	file := mutedStyle.Render("none, press [f] to choose")
	if len(u.snap.Files) > 0 {
		f := u.snap.Files[0]
		file = fmt.Sprintf("%s (%s)", f.Name, sizeLabel(f.Size))
	}
	password := mutedStyle.Render("not set, press [p]")
	if u.snap.SecretSet {
		password = "********"
	}
	fmt.Fprintf(&b, "file:     %s\npassword: %s\n\n", file, password)

	if u.field != fieldNone {
		b.WriteString(u.input.View() + "\n" + u.help.View(u.inputKeys))
	} else {
		b.WriteString(u.help.View(u.keys))
	}

	if footer := renderFooter(u.snap, u.status, u.opts); footer != "" {
		b.WriteString("\n\n" + footer)
	}
	return b.String()
}
