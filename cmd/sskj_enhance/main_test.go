package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePage = `<div><span class="font_xlarge"><a href="/h">pésem</a></span>` +
	`<span class="ex"><span data-group="example">ljudska</span></span> ; <b>x</b></div>`

// TestRun_StdinToStdout verifies the default stdin/stdout path applies both
// passes.
//
// We test via run() (not main()) so the test is fast, deterministic,
// and does not require an OS-level subprocess.
func TestRun_StdinToStdout(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, strings.NewReader(samplePage), &stdout, &stderr, http.DefaultClient)
	if code != 0 {
		t.Fatalf("run returned %d; stderr=%s", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, `<a href="/h">pesem</a>`) {
		t.Fatalf("headword not normalized: %s", out)
	}
	if !strings.Contains(out, "</span></span>  <b>") {
		t.Fatalf("semicolon not removed: %s", out)
	}
	if !strings.Contains(stderr.String(), "page enhanced") {
		t.Fatalf("expected summary log, got: %s", stderr.String())
	}
}

// TestRun_FileInOut verifies --in/--out and a rules file that skips a pass.
func TestRun_FileInOut(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	in := filepath.Join(tmp, "in.html")
	out := filepath.Join(tmp, "out.html")
	rulesPath := filepath.Join(tmp, "rules.yaml")

	if err := os.WriteFile(in, []byte(samplePage), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rulesPath, []byte("enhance:\n  skip_diacritics: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--in", in, "-o", out, "--rules", rulesPath}, nil, &stdout, &stderr, http.DefaultClient)
	if code != 0 {
		t.Fatalf("run returned %d; stderr=%s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty with --out, got %q", stdout.String())
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), "pésem") {
		t.Fatalf("diacritics pass should be skipped: %s", b)
	}
	if strings.Contains(string(b), " ; ") {
		t.Fatalf("semicolon not removed: %s", b)
	}
}

// TestRun_URLDryRun verifies --url fetching combined with --dry-run output.
func TestRun_URLDryRun(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	t.Cleanup(srv.Close)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--url", srv.URL, "--dry-run"}, nil, &stdout, &stderr, srv.Client())
	if code != 0 {
		t.Fatalf("run returned %d; stderr=%s", code, stderr.String())
	}

	want := "semicolons\t#text\t\" ; \" -> \"  \"\n" +
		"diacritics\ta\t\"pésem\" -> \"pesem\"\n"
	if stdout.String() != want {
		t.Fatalf("unexpected dry run output:\n%s", stdout.String())
	}
}

// TestRun_Dir verifies directory mode writes every page into --out-dir.
func TestRun_Dir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	for _, name := range []string{"a.html", "b.html"} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(samplePage), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--dir", src, "--out-dir", dst, "-w", "2"}, nil, &stdout, &stderr, http.DefaultClient)
	if code != 0 {
		t.Fatalf("run returned %d; stderr=%s", code, stderr.String())
	}

	for _, name := range []string{"a.html", "b.html"} {
		b, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(b), "pesem") {
			t.Fatalf("%s not enhanced: %s", name, b)
		}
	}
}

// TestRun_DirDryRun verifies directory dry runs print edits per file in
// filename order and leave the pages alone.
func TestRun_DirDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.html", "a.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(samplePage), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--dir", dir, "--dry-run"}, nil, &stdout, &stderr, http.DefaultClient)
	if code != 0 {
		t.Fatalf("run returned %d; stderr=%s", code, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 edit lines, got %d:\n%s", len(lines), stdout.String())
	}
	if !strings.HasPrefix(lines[0], "a.html\t") || !strings.HasPrefix(lines[3], "b.html\t") {
		t.Fatalf("edits not in filename order:\n%s", stdout.String())
	}

	b, _ := os.ReadFile(filepath.Join(dir, "a.html"))
	if string(b) != samplePage {
		t.Fatalf("dry run modified the page")
	}
}

// TestRun_UsageErrors verifies bad flag combinations return exit code 2.
func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	badRules := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(badRules, []byte("enhance:\n  nope: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--bogus"}},
		{name: "dir without out-dir", args: []string{"--dir", tmp}},
		{name: "dir with in", args: []string{"--dir", tmp, "--out-dir", tmp, "--in", "x.html"}},
		{name: "in and url", args: []string{"--in", "x.html", "--url", "http://example.invalid"}},
		{name: "bad rules", args: []string{"--rules", badRules}},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), tt.args, strings.NewReader(""), &stdout, &stderr, http.DefaultClient); code != 2 {
			t.Fatalf("%s: expected exit code 2, got %d; stderr=%s", tt.name, code, stderr.String())
		}
	}
}

// TestRun_MissingInput verifies a missing input file is a runtime error.
func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--in", filepath.Join(t.TempDir(), "missing.html")}, nil, &stdout, &stderr, http.DefaultClient)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "load html") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}
