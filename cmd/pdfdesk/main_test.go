package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/submission"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

type fakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	hits      int
	names     []string
	passwords []string
}

// newFakeServer records the uploaded part names and answers with respond.
func newFakeServer(t *testing.T, respond func(w http.ResponseWriter)) *fakeServer {
	t.Helper()

	fs := &fakeServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fs.mu.Lock()
		fs.hits++
		for _, field := range []string{"files", "file"} {
			for _, fh := range r.MultipartForm.File[field] {
				fs.names = append(fs.names, fh.Filename)
			}
		}
		fs.passwords = append(fs.passwords, r.FormValue("password"))
		fs.mu.Unlock()

		respond(w)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) snapshot() (hits int, names, passwords []string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits, slices.Clone(fs.names), slices.Clone(fs.passwords)
}

func pdfResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/pdf")
	io.WriteString(w, "%PDF-1.7 result")
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	root := filepath.ToSlash(filepath.Join(dir, "results"))
	body := fmt.Sprintf("[storage]\nroot = %q\n\n[client]\npreview_addr = \"127.0.0.1:0\"\n", root)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		if err := os.WriteFile(paths[i], []byte("content of "+n), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func runCLI(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config-dir", writeConfig(t), "--server", server}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		src, dst int
		wantErr  bool
	}{
		{name: "first to last", in: "1:3", src: 0, dst: 2},
		{name: "spaces", in: " 3 : 1 ", src: 2, dst: 0},
		{name: "missing colon", in: "13", wantErr: true},
		{name: "zero position", in: "0:1", wantErr: true},
		{name: "not a number", in: "a:b", wantErr: true},
		{name: "negative", in: "2:-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst, err := parseMove(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errMoveSyntax) {
					t.Fatalf("parseMove(%q) error = %v, want errMoveSyntax", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMove(%q) error = %v", tt.in, err)
			}
			if src != tt.src || dst != tt.dst {
				t.Errorf("parseMove(%q) = %d, %d, want %d, %d", tt.in, src, dst, tt.src, tt.dst)
			}
		})
	}
}

func TestRenderStage(t *testing.T) {
	files := []staging.File{
		{Name: "report.pdf", Size: 2048},
		{Name: "scan.png"},
	}

	out := renderStage(files, false)
	for _, want := range []string{"report.pdf", "2.0 KB", "scan.png", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "report.pdf") > strings.Index(out, "scan.png") {
		t.Errorf("rows out of stage order:\n%s", out)
	}
}

func TestMergeCommandAppliesMovesAndSaves(t *testing.T) {
	srv := newFakeServer(t, pdfResponse)
	paths := writeFiles(t, "a.pdf", "b.pdf", "c.pdf")
	outDir := filepath.Join(t.TempDir(), "out")

	args := append([]string{"merge", "--move", "3:1", "--output", outDir}, paths...)
	stdout, err := runCLI(t, srv.URL, args...)
	if err != nil {
		t.Fatalf("merge error = %v", err)
	}

	if _, names, _ := srv.snapshot(); !slices.Equal(names, []string{"c.pdf", "a.pdf", "b.pdf"}) {
		t.Errorf("uploaded order: got %v, want [c.pdf a.pdf b.pdf]", names)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "merged.pdf"))
	if err != nil {
		t.Fatalf("read merged.pdf: %v", err)
	}
	if string(data) != "%PDF-1.7 result" {
		t.Errorf("merged content: got %q", data)
	}
	if !strings.Contains(stdout, "saved "+filepath.Join(outDir, "merged.pdf")) {
		t.Errorf("stdout missing saved line:\n%s", stdout)
	}
}

func TestMergeCommandOutOfRangeMove(t *testing.T) {
	srv := newFakeServer(t, pdfResponse)
	paths := writeFiles(t, "a.pdf", "b.pdf")

	args := append([]string{"merge", "--move", "5:1"}, paths...)
	if _, err := runCLI(t, srv.URL, args...); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("merge error = %v, want out of range", err)
	}
	if hits, _, _ := srv.snapshot(); hits != 0 {
		t.Errorf("server hits: got %d, want 0", hits)
	}
}

func TestMergeCommandTooFew(t *testing.T) {
	srv := newFakeServer(t, pdfResponse)
	paths := writeFiles(t, "only.pdf")

	_, err := runCLI(t, srv.URL, append([]string{"merge"}, paths...)...)

	var f *submission.Failure
	if !errors.As(err, &f) || f.Message != submission.MsgMergeTooFew {
		t.Fatalf("merge error = %v, want %q", err, submission.MsgMergeTooFew)
	}
	if hits, _, _ := srv.snapshot(); hits != 0 {
		t.Errorf("server hits: got %d, want 0", hits)
	}
}

func TestSubmitReportsUnreadableFile(t *testing.T) {
	fs := newFakeServer(t, pdfResponse)
	configDir, verbose := writeConfig(t), false
	s, err := newCommandContext(&configDir, &fs.URL, &verbose).open(newRootCommand())
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	defer s.close()

	paths := writeFiles(t, "a.pdf", "b.pdf")
	inputs, err := staging.LoadPaths(context.Background(), paths...)
	if err != nil {
		t.Fatalf("LoadPaths() error = %v", err)
	}
	wf := workflow.NewMerge(s.runtime)
	s.track(wf.Close)
	wf.Add(inputs...)

	if err := os.Remove(paths[1]); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetContext(context.Background())
	err = submitAndSave(cmd, s, wf, outputOptions{dir: t.TempDir()})

	var f *submission.Failure
	if !errors.As(err, &f) || f.Kind != submission.KindTransport {
		t.Fatalf("error = %v, want transport failure", err)
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("error should carry the read cause: %v", err)
	}
	if !strings.Contains(err.Error(), "b.pdf") {
		t.Errorf("error should name the unreadable file: %q", err)
	}
	if hits, _, _ := fs.snapshot(); hits != 0 {
		t.Errorf("server hits: got %d, want 0", hits)
	}
}

func TestMergeCommandRejectsDirectory(t *testing.T) {
	srv := newFakeServer(t, pdfResponse)
	paths := writeFiles(t, "a.pdf")

	_, err := runCLI(t, srv.URL, "merge", paths[0], t.TempDir())
	if !errors.Is(err, staging.ErrNotAFile) {
		t.Fatalf("merge error = %v, want ErrNotAFile", err)
	}
}

func TestUnlockCommand(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		flag     string
		env      string
		wantSent string
		wantErr  string
	}{
		{
			name:     "password flag",
			respond:  pdfResponse,
			flag:     "hunter2",
			wantSent: "hunter2",
		},
		{
			name:     "password from environment",
			respond:  pdfResponse,
			env:      "from-env",
			wantSent: "from-env",
		},
		{
			name: "wrong password",
			respond: func(w http.ResponseWriter) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, `{"error": "Incorrect password"}`)
			},
			flag:     "nope",
			wantSent: "nope",
			wantErr:  "Incorrect password",
		},
		{
			name: "unstructured server error",
			respond: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, "<html>bad gateway</html>")
			},
			flag:     "x",
			wantSent: "x",
			wantErr:  "Server error (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvUnlockPassword, tt.env)

			srv := newFakeServer(t, tt.respond)
			paths := writeFiles(t, "locked.pdf")
			outDir := t.TempDir()

			args := []string{"unlock", paths[0], "--output", outDir}
			if tt.flag != "" {
				args = append(args, "--password", tt.flag)
			}
			_, err := runCLI(t, srv.URL, args...)

			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("unlock error = %v, want %q", err, tt.wantErr)
				}
				if _, statErr := os.Stat(filepath.Join(outDir, "unlocked.pdf")); statErr == nil {
					t.Error("no result should be saved on failure")
				}
			} else {
				if err != nil {
					t.Fatalf("unlock error = %v", err)
				}
				if _, err := os.Stat(filepath.Join(outDir, "unlocked.pdf")); err != nil {
					t.Errorf("unlocked.pdf not saved: %v", err)
				}
			}

			if _, _, passwords := srv.snapshot(); !slices.Equal(passwords, []string{tt.wantSent}) {
				t.Errorf("passwords sent: got %v, want [%s]", passwords, tt.wantSent)
			}
		})
	}
}

func TestUnlockCommandNoPassword(t *testing.T) {
	t.Setenv(EnvUnlockPassword, "")

	srv := newFakeServer(t, pdfResponse)
	paths := writeFiles(t, "locked.pdf")

	_, err := runCLI(t, srv.URL, "unlock", paths[0])
	if err == nil || err.Error() != submission.MsgUnlockNoPassword {
		t.Fatalf("unlock error = %v, want %q", err, submission.MsgUnlockNoPassword)
	}
	if hits, _, _ := srv.snapshot(); hits != 0 {
		t.Errorf("server hits: got %d, want 0", hits)
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	srv := newFakeServer(t, pdfResponse)

	if _, err := runCLI(t, srv.URL, "tui", "merge"); !errors.Is(err, errNotTerminal) {
		t.Fatalf("tui error = %v, want errNotTerminal", err)
	}
}

func TestPreviewServesLiveResult(t *testing.T) {
	configDir, server, verbose := writeConfig(t), "", false
	s, err := newCommandContext(&configDir, &server, &verbose).open(newRootCommand())
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	defer s.close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	viewer := results.NewViewer(s.infra.Storage, "merged.pdf", logger)

	h, err := viewer.Publish(context.Background(), strings.NewReader("%PDF-preview"))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	base, err := startPreview(s, viewer)
	if err != nil {
		t.Fatalf("startPreview() error = %v", err)
	}

	resp, err := http.Get(base + h.Ref() + "/download")
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || string(body) != "%PDF-preview" {
		t.Errorf("download: got %d %q", resp.StatusCode, body)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "merged.pdf") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	if err := viewer.Release(context.Background()); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	resp, err = http.Get(base + h.Ref())
	if err != nil {
		t.Fatalf("GET preview: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("revoked preview: got %d, want 404", resp.StatusCode)
	}
}
