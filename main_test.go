package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func writeDoc(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func baseOptions(t *testing.T, dir string) options {
	return options{
		configPath: filepath.Join(dir, "missing.toml"),
		width:      10,
	}
}

func TestRunANSI(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions(t, dir)
	opts.input = writeDoc(t, dir, "# Hi\n\nHello **${who}** world")
	opts.format = "ansi"
	opts.data = `{"who": "dear"}`

	var out bytes.Buffer
	if err := run(opts, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Hi        \n          \nHello dear\nworld     \n"
	if got := ansi.Strip(out.String()); got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
}

func TestRunStdinJSONAndDebug(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions(t, dir)
	opts.input = "-"
	opts.format = "json"
	opts.debug = filepath.Join(dir, "debug", "layout.json")

	var out bytes.Buffer
	if err := run(opts, strings.NewReader("one two three"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var decoded struct {
		Width  int `json:"width"`
		Blocks []struct {
			Lines []json.RawMessage `json:"lines"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if decoded.Width != 10 || len(decoded.Blocks) != 1 || len(decoded.Blocks[0].Lines) != 2 {
		t.Fatalf("unexpected layout json: %s", out.String())
	}
	debug, err := os.ReadFile(opts.debug)
	if err != nil {
		t.Fatalf("debug file: %v", err)
	}
	if !bytes.Equal(debug, out.Bytes()) {
		t.Errorf("debug JSON should match json output")
	}
}

func TestRunSVGToFile(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions(t, dir)
	opts.input = writeDoc(t, dir, "Some `code` here")
	opts.format = "svg"
	opts.output = filepath.Join(dir, "out", "doc.svg")

	if err := run(opts, nil, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatalf("output is not svg: %.80s", data)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "text")

	cases := map[string]options{
		"unknown format": {input: doc, format: "docx", width: 10},
		"missing input":  {input: filepath.Join(dir, "nope.md"), format: "ansi", width: 10},
		"bad data":       {input: doc, format: "ansi", width: 10, data: "{"},
		"negative width": {input: doc, format: "ansi", width: -3},
	}
	for name, opts := range cases {
		opts.configPath = filepath.Join(dir, "missing.toml")
		if err := run(opts, nil, &bytes.Buffer{}); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestResolveWidth(t *testing.T) {
	if got := resolveWidth(30, 50, &bytes.Buffer{}); got != 30 {
		t.Errorf("flag width should win, got %d", got)
	}
	if got := resolveWidth(0, 50, &bytes.Buffer{}); got != 50 {
		t.Errorf("config width should be used, got %d", got)
	}
	if got := resolveWidth(0, 0, &bytes.Buffer{}); got != 80 {
		t.Errorf("non-terminal output should fall back to 80, got %d", got)
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("notes/readme.md", "pdf"); got != "readme.pdf" {
		t.Errorf("outputName = %q", got)
	}
	if got := outputName("-", "png"); got != "quill.png" {
		t.Errorf("outputName = %q", got)
	}
}

func TestCLIExitCodes(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "hello")
	cfg := filepath.Join(dir, "missing.toml")

	var out bytes.Buffer
	if code := cli([]string{"-config", cfg, "-format", "ansi", "-width", "8", doc}, nil, &out); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if got := ansi.Strip(out.String()); got != "hello   \n" {
		t.Fatalf("unexpected output %q", got)
	}
	if code := cli([]string{"-config", cfg}, nil, &bytes.Buffer{}); code != 2 {
		t.Fatalf("missing input: exit code %d, want 2", code)
	}
	if code := cli([]string{"-config", cfg, "-format", "docx", doc}, nil, &bytes.Buffer{}); code != 1 {
		t.Fatalf("bad format: exit code %d, want 1", code)
	}
}

// 出错时日志文件应已写入并关闭，而不是在进程退出时丢失。
func TestCLIErrorReachesDebugLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "quill.log")
	t.Setenv("QUILL_DEBUG_LOG", logPath)

	missing := filepath.Join(dir, "nope.md")
	code := cli([]string{"-config", filepath.Join(dir, "missing.toml"), "-format", "ansi", missing}, nil, &bytes.Buffer{})
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "nope.md") {
		t.Fatalf("log file should record the error, got %q", data)
	}
}

func TestPagerProgramOptionsUseTTYForStdin(t *testing.T) {
	file := pagerProgramOptions("notes.md")
	stdin := pagerProgramOptions("-")
	if len(stdin) != len(file)+1 {
		t.Fatalf("stdin documents need an extra TTY input option: %d vs %d", len(stdin), len(file))
	}
}
