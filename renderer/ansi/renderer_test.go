package ansirenderer

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
	"github.com/ByLCY/quill/renderer"
)

func TestRenderPlainText(t *testing.T) {
	doc, err := markdown.ParseString("# Hi\n\nHello **dear** world")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := layout.Build(doc, layout.BuildOptions{Width: 10, BlockSpacing: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var sink bytes.Buffer
	out, err := NewRenderer(renderer.DefaultTheme(), &sink).Render(res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := ansi.Strip(string(out))
	want := "Hi        \n" +
		"          \n" +
		"Hello dear\n" +
		"world     \n"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
	for i, ln := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if n := utf8.RuneCountInString(ln); n != 10 {
			t.Fatalf("line %d has width %d", i, n)
		}
	}
}

func TestRenderNilResult(t *testing.T) {
	if _, err := NewRenderer(renderer.Theme{}, nil).Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestRenderRowKeepsSpaces(t *testing.T) {
	row := layout.Row{Line: layout.Line{Elements: []layout.Element{
		layout.Word(markdown.StyledWord{Text: "a", Style: markdown.Style{Code: true}}),
		layout.Space(3),
		layout.Word(markdown.PlainWord("b")),
	}}}
	got := ansi.Strip(NewRenderer(renderer.DefaultTheme(), &bytes.Buffer{}).RenderRow(row))
	if got != "a   b" {
		t.Fatalf("got %q", got)
	}
}
