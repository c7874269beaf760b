package canvasrenderer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
)

func buildResult(t *testing.T, src string, width int) *layout.Result {
	t.Helper()
	doc, err := markdown.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := layout.Build(doc, layout.BuildOptions{Width: width, BlockSpacing: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return res
}

const sample = "# Title\n\nSome **bold** and *italic* words with `code` inside a paragraph that wraps."

func TestRenderPDF(t *testing.T) {
	r := NewRenderer(Options{})
	out, err := r.Render(buildResult(t, sample, 24))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", out[:min(len(out), 8)])
	}
}

// 页高很小时每页只放一行，仍应正常分页输出。
func TestRenderPDFPaginates(t *testing.T) {
	r := NewRenderer(Options{Format: FormatPDF, Margin: MM(1), PageHeight: MM(8)})
	out, err := r.Render(buildResult(t, sample, 12))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty output")
	}
}

func TestRenderSVG(t *testing.T) {
	r := NewRenderer(Options{Format: FormatSVG})
	out, err := r.Render(buildResult(t, sample, 30))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Fatalf("expected svg output")
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{Width: 10}); err == nil {
		t.Fatalf("expected error for empty result")
	}
	bad := NewRenderer(Options{Format: "bmp"})
	if _, err := bad.Render(buildResult(t, "x", 4)); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

// TestMonospaceGrid 验证内置字体为等宽字体：n 个字符的宽度等于 n 个单元格。
func TestMonospaceGrid(t *testing.T) {
	r := NewRenderer(Options{})
	g, err := r.measure()
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if g.cellWidth <= 0 || g.lineHeight <= 0 {
		t.Fatalf("invalid grid %+v", g)
	}
	for _, style := range []markdown.Style{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		face, err := r.face(style, 0)
		if err != nil {
			t.Fatalf("face: %v", err)
		}
		got := face.TextWidth("iiiiWWWW")
		if diff := math.Abs(got - 8*g.cellWidth); diff > 1e-3 {
			t.Fatalf("style %+v: width %g, want %g", style, got, 8*g.cellWidth)
		}
	}
}

func TestFaceCache(t *testing.T) {
	r := NewRenderer(Options{})
	a, err := r.face(markdown.Style{Bold: true}, 0)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	b, _ := r.face(markdown.Style{Bold: true}, 0)
	if a != b {
		t.Fatalf("expected cached face")
	}
	c, _ := r.face(markdown.Style{Bold: true}, 1)
	if a == c {
		t.Fatalf("heading colour should use a separate face")
	}
}
