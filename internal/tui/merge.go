// Package tui provides the interactive merge and unlock views. Each view
// renders from workflow snapshots and runs submissions as commands.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

type submitDoneMsg struct{ err error }

type intakeMsg struct {
	inputs []staging.Input
	err    error
}

type savedMsg struct {
	path string
	err  error
}

// Merge is the interactive staging view for the merge workflow.
type Merge struct {
	ctx    context.Context
	wf     *workflow.Merge
	opts   Options
	feed   *feed
	cancel func()

	keys      mergeKeyMap
	inputKeys inputKeyMap
	help      help.Model

	snap    workflow.Snapshot
	cursor  int
	grabbed uuid.UUID
	editing bool
	input   textinput.Model
	status  string
}

// NewMerge creates the merge view over wf.
func NewMerge(ctx context.Context, wf *workflow.Merge, opts Options) *Merge {
	m := &Merge{
		ctx:       ctx,
		wf:        wf,
		opts:      opts,
		feed:      newFeed(),
		keys:      newMergeKeyMap(),
		inputKeys: newInputKeyMap(),
		help:      help.New(),
		snap:      wf.Snapshot(),
	}
	m.cancel = wf.Subscribe(m.feed.push)
	m.syncKeys()
	return m
}

func (m *Merge) Init() tea.Cmd {
	return m.feed.next()
}

func (m *Merge) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			cmd = m.handleInput(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	case changedMsg:
		cmd = m.feed.next()
	case intakeMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			break
		}
		added := m.wf.Add(msg.inputs...)
		m.status = fmt.Sprintf("staged %d file(s)", len(added))
	case submitDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
	case savedMsg:
		m.status = savedStatus(msg)
	}

	m.snap = m.wf.Snapshot()
	m.clampCursor()
	m.syncKeys()
	return m, cmd
}

func (m *Merge) handleKey(k tea.KeyMsg) tea.Cmd {
	n := len(m.snap.Files)

	switch {
	case key.Matches(k, m.keys.Quit):
		m.cancel()
		return tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(k, m.keys.MoveUp):
		m.nudge(-1)
	case key.Matches(k, m.keys.MoveDown):
		m.nudge(1)
	case key.Matches(k, m.keys.Grab):
		if m.grabbed == uuid.Nil {
			if f, ok := m.current(); ok {
				m.grabbed = f.ID
				m.status = "moving: choose a destination"
			}
			return nil
		}
		m.wf.Apply(staging.Drop{Source: m.wf.IndexOf(m.grabbed), Destination: m.cursor})
		m.grabbed = uuid.Nil
		m.status = ""
	case key.Matches(k, m.keys.Cancel):
		m.wf.Apply(staging.Drop{Source: m.wf.IndexOf(m.grabbed), Destination: m.cursor, Cancelled: true})
		m.grabbed = uuid.Nil
		m.status = "move cancelled"
	case key.Matches(k, m.keys.Remove):
		if f, ok := m.current(); ok {
			m.wf.Remove(f.ID)
		}
	case key.Matches(k, m.keys.Add):
		m.editing = true
		m.input = newPathInput("add path: ")
	case key.Matches(k, m.keys.Clear):
		m.wf.Clear()
	case key.Matches(k, m.keys.Submit):
		if m.snap.Busy {
			m.status = "a submission is already in flight"
			return nil
		}
		m.status = ""
		return m.submit()
	case key.Matches(k, m.keys.Save):
		return m.save()
	}
	return nil
}

func (m *Merge) handleInput(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, m.inputKeys.Cancel):
		m.editing = false
		return nil
	case key.Matches(k, m.inputKeys.Confirm):
		m.editing = false
		if paths := strings.Fields(m.input.Value()); len(paths) > 0 {
			return intake(m.ctx, paths)
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return cmd
}

// nudge shifts the file under the cursor by delta and keeps the cursor on it.
func (m *Merge) nudge(delta int) {
	f, ok := m.current()
	if !ok {
		return
	}
	if m.wf.Move(m.cursor, m.cursor+delta) {
		m.cursor = m.wf.IndexOf(f.ID)
	}
}

func (m *Merge) current() (staging.File, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Files) {
		return staging.File{}, false
	}
	return m.snap.Files[m.cursor], true
}

func (m *Merge) submit() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: m.wf.Submit(m.ctx)}
	}
}

func (m *Merge) save() tea.Cmd {
	return saveResult(m.ctx, m.wf.Viewer(), m.opts.SaveDir)
}

func (m *Merge) clampCursor() {
	if m.cursor >= len(m.snap.Files) {
		m.cursor = max(len(m.snap.Files)-1, 0)
	}
	if m.grabbed != uuid.Nil && m.wf.IndexOf(m.grabbed) < 0 {
		m.grabbed = uuid.Nil
	}
}

// syncKeys enables the bindings that apply to the current state, which also
// drives what the help line shows.
func (m *Merge) syncKeys() {
	grabbing := m.grabbed != uuid.Nil
	n := len(m.snap.Files)

	m.keys.Cancel.SetEnabled(grabbing)
	m.keys.Remove.SetEnabled(!grabbing && n > 0)
	m.keys.MoveUp.SetEnabled(!grabbing && n > 1)
	m.keys.MoveDown.SetEnabled(!grabbing && n > 1)
	m.keys.Grab.SetEnabled(n > 0)
	m.keys.Save.SetEnabled(m.snap.Result != nil)

	if grabbing {
		m.keys.Grab.SetHelp("m", "drop")
	} else {
		m.keys.Grab.SetHelp("m", "pick up")
	}
}

func (m *Merge) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Merge PDFs"))
	b.WriteString("\n\n")

	if len(m.snap.Files) == 0 {
		b.WriteString(mutedStyle.Render("no files staged, press [a] to add"))
		b.WriteString("\n")
	}

	for i, f := range m.snap.Files {
		marker := "  "
		line := fmt.Sprintf("%2d. %-40s %10s", i+1, f.Name, sizeLabel(f.Size))
		switch {
		case f.ID == m.grabbed:
			marker = "≡ "
			line = grabStyle.Render(line)
		case i == m.cursor:
			marker = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View() + "\n" + m.help.View(m.inputKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	if footer := renderFooter(m.snap, m.status, m.opts); footer != "" {
		b.WriteString("\n\n" + footer)
	}
	return b.String()
}
