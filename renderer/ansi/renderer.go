package ansirenderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
	"github.com/ByLCY/quill/renderer"
)

// Renderer writes layout results as styled terminal text through lipgloss.
// Words carry their style; whitespace elements become literal spaces.
type Renderer struct {
	theme  renderer.Theme
	lg     *lipgloss.Renderer
	styles map[styleKey]lipgloss.Style
}

var _ renderer.Renderer = (*Renderer)(nil)

type styleKey struct {
	style   markdown.Style
	heading bool
}

// NewRenderer creates a renderer whose colour profile is detected from out.
// A nil out uses lipgloss' default renderer (stdout).
func NewRenderer(theme renderer.Theme, out io.Writer) *Renderer {
	lg := lipgloss.DefaultRenderer()
	if out != nil {
		lg = lipgloss.NewRenderer(out)
	}
	return &Renderer{
		theme:  theme,
		lg:     lg,
		styles: map[styleKey]lipgloss.Style{},
	}
}

// Render implements renderer.Renderer.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	s, err := r.RenderString(result)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// RenderString renders every row followed by a newline.
func (r *Renderer) RenderString(result *layout.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("渲染结果为空")
	}
	var b strings.Builder
	for _, row := range result.Rows() {
		b.WriteString(r.RenderRow(row))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// RenderRow renders a single row without a trailing newline.
func (r *Renderer) RenderRow(row layout.Row) string {
	var b strings.Builder
	for _, el := range row.Line.Elements {
		if el.Kind == layout.ElementSpace {
			b.WriteString(strings.Repeat(" ", el.Spaces))
			continue
		}
		b.WriteString(r.style(el.Word.Style, row.Heading > 0).Render(el.Word.Text))
	}
	return b.String()
}

func (r *Renderer) style(style markdown.Style, heading bool) lipgloss.Style {
	key := styleKey{style: style, heading: heading}
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := r.lg.NewStyle().Bold(style.Bold).Italic(style.Italic)
	switch {
	case style.Code:
		if r.theme.Code != "" {
			s = s.Foreground(lipgloss.Color(r.theme.Code))
		}
		if r.theme.CodeBackground != "" {
			s = s.Background(lipgloss.Color(r.theme.CodeBackground))
		}
	case heading && r.theme.Heading != "":
		s = s.Foreground(lipgloss.Color(r.theme.Heading))
	}
	r.styles[key] = s
	return s
}
