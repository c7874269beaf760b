package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quill/fonts"
	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
	"github.com/ByLCY/quill/renderer"
)

// 支持的输出格式。
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Renderer draws layout results onto a monospace cell grid via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

var _ renderer.Renderer = (*Renderer)(nil)

type faceKey struct {
	bold   bool
	italic bool
	color  string
}

// Options configures the canvas renderer.
type Options struct {
	Format     string  // pdf / svg / png
	FontSize   Length  // 字号
	Margin     Length  // 四周留白
	PageHeight Length  // PDF 分页高度，SVG/PNG 不分页
	Resolution float64 // PNG 每毫米像素数
	Theme      renderer.Theme
}

// DefaultOptions returns A4-height PDF output with 10pt Go Mono.
func DefaultOptions() Options {
	return Options{
		Format:     FormatPDF,
		FontSize:   PT(10),
		Margin:     MM(12),
		PageHeight: MM(297),
		Resolution: 8,
		Theme:      renderer.DefaultTheme(),
	}
}

// NewRenderer creates a renderer; zero-valued options fall back to DefaultOptions.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.FontSize.IsZero() {
		opts.FontSize = def.FontSize
	}
	if opts.PageHeight.IsZero() {
		opts.PageHeight = def.PageHeight
	}
	if opts.Resolution <= 0 {
		opts.Resolution = def.Resolution
	}
	if opts.Theme == (renderer.Theme{}) {
		opts.Theme = def.Theme
	}
	return &Renderer{
		opts:  opts,
		faces: map[faceKey]*canvas.FontFace{},
	}
}

// grid 记录单元格尺寸，单位均为 mm。
type grid struct {
	cellWidth  float64
	lineHeight float64
	ascent     float64
	margin     float64
}

// Render renders the result into the configured format.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	rows := result.Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("缺少可渲染的行")
	}
	g, err := r.measure()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(r.opts.Format) {
	case FormatPDF:
		return r.renderPDF(rows, result.Width, g)
	case FormatSVG:
		return r.renderSingle(rows, result.Width, g, renderers.SVG())
	case FormatPNG:
		return r.renderSingle(rows, result.Width, g, renderers.PNG(canvas.DPMM(r.opts.Resolution)))
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.opts.Format)
	}
}

func (r *Renderer) measure() (grid, error) {
	face, err := r.face(markdown.Style{}, 0)
	if err != nil {
		return grid{}, err
	}
	metrics := face.Metrics()
	lineHeight := metrics.LineHeight
	if lineHeight <= 0 {
		lineHeight = r.opts.FontSize.ToMM() * 1.2
	}
	return grid{
		cellWidth:  face.TextWidth("M"),
		lineHeight: lineHeight,
		ascent:     metrics.Ascent,
		margin:     r.opts.Margin.ToMM(),
	}, nil
}

func (r *Renderer) renderPDF(rows []layout.Row, width int, g grid) ([]byte, error) {
	pageWidth := 2*g.margin + float64(width)*g.cellWidth
	pageHeight := r.opts.PageHeight.ToMM()
	perPage := int((pageHeight - 2*g.margin) / g.lineHeight)
	if perPage < 1 {
		perPage = 1
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageWidth, pageHeight, nil)
	writer.SetInfo("", "", "", "", "quill")
	for start := 0; start < len(rows); start += perPage {
		if start > 0 {
			writer.NewPage(pageWidth, pageHeight)
		}
		end := min(start+perPage, len(rows))
		c := canvas.New(pageWidth, pageHeight)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标以左上角为原点
		if err := r.drawRows(ctx, rows[start:end], g); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSingle 把所有行画在同一张画布上，用于 SVG 与 PNG。
func (r *Renderer) renderSingle(rows []layout.Row, width int, g grid, write canvas.Writer) ([]byte, error) {
	pageWidth := 2*g.margin + float64(width)*g.cellWidth
	pageHeight := 2*g.margin + float64(len(rows))*g.lineHeight
	c := canvas.New(pageWidth, pageHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(pageWidth, pageHeight))
	if err := r.drawRows(ctx, rows, g); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := write(&buf, c); err != nil {
		return nil, fmt.Errorf("写入 %s 失败: %w", r.opts.Format, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawRows(ctx *canvas.Context, rows []layout.Row, g grid) error {
	cursorY := g.margin
	for _, row := range rows {
		x := g.margin
		for _, el := range row.Line.Elements {
			if el.Kind == layout.ElementSpace {
				x += float64(el.Spaces) * g.cellWidth
				continue
			}
			width := float64(el.Word.Len()) * g.cellWidth
			if el.Word.Style.Code && r.opts.Theme.CodeBackground != "" {
				ctx.SetFillColor(colorFromHex(r.opts.Theme.CodeBackground))
				ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
				ctx.DrawPath(x, cursorY, canvas.Rectangle(width, g.lineHeight))
			}
			face, err := r.face(el.Word.Style, row.Heading)
			if err != nil {
				return err
			}
			// 基线位置：行顶部加上字体上升部
			ctx.DrawText(x, cursorY+g.ascent, canvas.NewTextLine(face, el.Word.Text, canvas.Left))
			x += width
		}
		cursorY += g.lineHeight
	}
	return nil
}

func (r *Renderer) face(style markdown.Style, heading int) (*canvas.FontFace, error) {
	col := r.opts.Theme.Text
	switch {
	case style.Code && r.opts.Theme.Code != "":
		col = r.opts.Theme.Code
	case heading > 0 && r.opts.Theme.Heading != "":
		col = r.opts.Theme.Heading
	}
	key := faceKey{bold: style.Bold, italic: style.Italic, color: col}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	if r.family == nil {
		family := canvas.NewFontFamily(fonts.Family)
		for _, v := range []struct{ bold, italic bool }{{false, false}, {true, false}, {false, true}, {true, true}} {
			if err := family.LoadFont(fonts.Mono(v.bold, v.italic), 0, fontStyle(v.bold, v.italic)); err != nil {
				return nil, fmt.Errorf("加载内置字体失败: %w", err)
			}
		}
		r.family = family
	}
	// 标题与正文同字号，保证单元格网格一致。
	face := r.family.Face(r.opts.FontSize.ToPT(), colorFromHex(col), fontStyle(style.Bold, style.Italic), canvas.FontNormal)
	r.faces[key] = face
	return face, nil
}

func fontStyle(bold, italic bool) canvas.FontStyle {
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	if italic {
		style |= canvas.FontItalic
	}
	return style
}

func colorFromHex(hex string) color.Color {
	if strings.TrimSpace(hex) == "" {
		return canvas.Black
	}
	return canvas.Hex(hex)
}
