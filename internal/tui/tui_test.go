package tui_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/submission"
	"github.com/JaimeStill/pdfdesk/internal/tui"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

func newRuntime(t *testing.T, h http.HandlerFunc) *workflow.Runtime {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.New(&storage.Config{Provider: storage.ProviderLocal, Root: t.TempDir()}, logger)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := store.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	client, err := submission.NewClient(srv.URL, 0, logger)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return &workflow.Runtime{Client: client, Storage: store, Logger: logger}
}

func okPDF(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "%PDF-1.7")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to model, running every returned command and feeding its
// message back. Init is never run, so the change feed stays idle.
func press(t *testing.T, model tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		var (
			cmd  tea.Cmd
			quit bool
		)
		model, cmd = model.Update(key(k))
		if model, quit = drain(model, cmd); quit {
			return model
		}
	}
	return model
}

func drain(model tea.Model, cmd tea.Cmd) (tea.Model, bool) {
	if cmd == nil {
		return model, false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return model, true
	case tea.BatchMsg:
		for _, c := range msg {
			var quit bool
			if model, quit = drain(model, c); quit {
				return model, true
			}
		}
		return model, false
	default:
		model, cmd = model.Update(msg)
		return drain(model, cmd)
	}
}

func typed(s string) []string {
	keys := make([]string, 0, len(s))
	for _, r := range s {
		keys = append(keys, string(r))
	}
	return keys
}

func names(files []staging.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestMergeReorderByKeys(t *testing.T) {
	wf := workflow.NewMerge(newRuntime(t, okPDF))
	defer wf.Close(context.Background())

	wf.Add(
		staging.Input{Name: "A.pdf", Blob: staging.Bytes([]byte("a"))},
		staging.Input{Name: "B.pdf", Blob: staging.Bytes([]byte("b"))},
		staging.Input{Name: "C.pdf", Blob: staging.Bytes([]byte("c"))},
	)

	m := tui.NewMerge(context.Background(), wf, tui.Options{})

	if strings.Contains(m.View(), "clear") {
		t.Error("short help should not list clear")
	}
	press(t, m, "?")
	if !strings.Contains(m.View(), "clear") {
		t.Errorf("full help should list clear:\n%s", m.View())
	}
	press(t, m, "?")

	press(t, m, "m")
	if !strings.Contains(m.View(), "drop") {
		t.Errorf("help should offer drop while moving:\n%s", m.View())
	}

	// carry A to the end, drop
	press(t, m, "j", "j", "m")
	if got := names(wf.Snapshot().Files); !slices.Equal(got, []string{"B.pdf", "C.pdf", "A.pdf"}) {
		t.Errorf("after drop: got %v", got)
	}

	// a cancelled gesture changes nothing
	press(t, m, "m", "k", "esc")
	if got := names(wf.Snapshot().Files); !slices.Equal(got, []string{"B.pdf", "C.pdf", "A.pdf"}) {
		t.Errorf("after cancel: got %v", got)
	}

	// cursor is on C (index 1); shift it up
	press(t, m, "K")
	if got := names(wf.Snapshot().Files); !slices.Equal(got, []string{"C.pdf", "B.pdf", "A.pdf"}) {
		t.Errorf("after K: got %v", got)
	}

	press(t, m, "x")
	if got := names(wf.Snapshot().Files); !slices.Equal(got, []string{"B.pdf", "A.pdf"}) {
		t.Errorf("after remove: got %v", got)
	}
}

func TestMergeAddSubmitSave(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"one.pdf", "two.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	wf := workflow.NewMerge(newRuntime(t, okPDF))
	defer wf.Close(context.Background())

	out := t.TempDir()
	m := tui.NewMerge(context.Background(), wf, tui.Options{SaveDir: out, PreviewURL: "http://127.0.0.1:8081"})

	press(t, m, "enter")
	if !strings.Contains(m.View(), submission.MsgMergeTooFew) {
		t.Errorf("view should show the precondition message:\n%s", m.View())
	}

	// the second path is typed as "tw.pdf" and fixed in place
	keys := append([]string{"a"}, typed(filepath.Join(dir, "one.pdf")+" "+filepath.Join(dir, "tw.pdf"))...)
	keys = append(keys, "left", "left", "left", "left", "o", "enter")
	press(t, m, keys...)

	if got := names(wf.Snapshot().Files); !slices.Equal(got, []string{"one.pdf", "two.pdf"}) {
		t.Fatalf("staged: got %v", got)
	}

	press(t, m, "enter")
	snap := wf.Snapshot()
	if snap.Result == nil {
		t.Fatalf("no result after submit, failure %q", snap.Message())
	}
	if view := m.View(); !strings.Contains(view, "http://127.0.0.1:8081"+snap.Result.Ref()) {
		t.Errorf("view should show the preview link:\n%s", view)
	}

	press(t, m, "w")
	data, err := os.ReadFile(filepath.Join(out, workflow.MergeFilename))
	if err != nil {
		t.Fatalf("saved result: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Errorf("saved content: got %q", data)
	}
}

func TestUnlockKeys(t *testing.T) {
	var password string
	wf := workflow.NewUnlock(newRuntime(t, func(w http.ResponseWriter, r *http.Request) {
		password = r.FormValue("password")
		okPDF(w, r)
	}))
	defer wf.Close(context.Background())

	path := filepath.Join(t.TempDir(), "locked.pdf")
	if err := os.WriteFile(path, []byte("locked"), 0o600); err != nil {
		t.Fatal(err)
	}

	u := tui.NewUnlock(context.Background(), wf, tui.Options{})

	keys := append([]string{"f"}, typed(path+"x")...)
	keys = append(keys, "backspace", "enter", "p")
	press(t, u, append(keys, typed("secret")...)...)

	view := u.View()
	if strings.Contains(view, "secret") || !strings.Contains(view, "******") {
		t.Errorf("password field should echo masked characters:\n%s", view)
	}
	press(t, u, "enter")

	snap := wf.Snapshot()
	if len(snap.Files) != 1 || snap.Files[0].Name != "locked.pdf" || !snap.SecretSet {
		t.Fatalf("snapshot: %+v", snap)
	}
	if strings.Contains(u.View(), "secret") {
		t.Error("password must be masked in the view")
	}

	press(t, u, "enter")
	if password != "secret" {
		t.Errorf("password sent: got %q", password)
	}
	if wf.Snapshot().Result == nil {
		t.Error("expected a result after unlock")
	}
}
