package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ByLCY/quill/binding"
	"github.com/ByLCY/quill/config"
	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
	"github.com/ByLCY/quill/pager"
	"github.com/ByLCY/quill/renderer"
	ansirenderer "github.com/ByLCY/quill/renderer/ansi"
	canvasrenderer "github.com/ByLCY/quill/renderer/canvas"
)

type options struct {
	input      string
	output     string
	format     string
	width      int
	configPath string
	data       string
	debug      string
}

func main() {
	os.Exit(cli(os.Args[1:], os.Stdin, os.Stdout))
}

// cli 解析参数并执行，返回进程退出码；所有 defer 都在退出前执行。
func cli(args []string, stdin io.Reader, stdout io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.StringVar(&opts.input, "in", "", "Markdown 文件路径，- 表示标准输入")
	fs.StringVar(&opts.output, "out", "", "输出路径；ansi/json 默认写到标准输出")
	fs.StringVar(&opts.format, "format", "", "输出格式: ansi|pager|json|pdf|svg|png（默认取配置）")
	fs.IntVar(&opts.width, "width", 0, "排版宽度（字符），0 表示自动")
	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "配置文件路径")
	fs.StringVar(&opts.data, "data", "", "绑定到文档的 JSON 数据")
	fs.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.input == "" && fs.NArg() > 0 {
		opts.input = fs.Arg(0)
	}
	if opts.input == "" {
		fs.Usage()
		return 2
	}

	if path := os.Getenv("QUILL_DEBUG_LOG"); path != "" {
		f, err := tea.LogToFile(path, "quill")
		if err != nil {
			log.Printf("打开日志文件失败: %v", err)
			return 1
		}
		defer func() {
			f.Close()
			log.SetOutput(os.Stderr)
			log.SetPrefix("")
		}()
	}

	if err := run(opts, stdin, stdout); err != nil {
		log.Printf("quill: %v", err)
		return 1
	}
	return 0
}

// run 串联配置、解析、布局与渲染。
func run(opts options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.ToLower(cfg.Format)
	}
	if opts.width < 0 {
		return fmt.Errorf("width 不能为负数: %d", opts.width)
	}

	data, err := binding.Decode(opts.data)
	if err != nil {
		return err
	}
	load := func() (*markdown.Document, error) {
		return loadDocument(opts.input, stdin, data)
	}
	doc, err := load()
	if err != nil {
		return err
	}

	if format == "pager" {
		return runPager(doc, cfg, opts.input, load)
	}

	width := resolveWidth(opts.width, cfg.Width, stdout)
	result, err := layout.Build(doc, cfg.BuildOptions(width))
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	if opts.debug != "" {
		if err := writeDebug(result, opts.debug); err != nil {
			return err
		}
	}

	var r renderer.Renderer
	switch format {
	case "ansi":
		r = ansirenderer.NewRenderer(cfg.Theme, stdout)
	case "json":
		r = jsonRenderer{}
	case canvasrenderer.FormatPDF, canvasrenderer.FormatSVG, canvasrenderer.FormatPNG:
		canvasOpts, err := cfg.CanvasOptions(format)
		if err != nil {
			return err
		}
		r = canvasrenderer.NewRenderer(canvasOpts)
		if opts.output == "" {
			opts.output = outputName(opts.input, format)
		}
	default:
		return fmt.Errorf("不支持的输出格式 %q", format)
	}

	out, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", format, err)
	}
	return writeOutput(opts.output, out, stdout)
}

func loadDocument(path string, stdin io.Reader, data any) (*markdown.Document, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取文档 %s: %w", path, err)
	}
	doc, err := markdown.ParseString(binding.Interpolate(string(raw), data))
	if err != nil {
		return nil, fmt.Errorf("解析文档失败: %w", err)
	}
	return doc, nil
}

// resolveWidth 依次取命令行、配置、终端宽度，最后回退到 80。
func resolveWidth(flagWidth, cfgWidth int, out io.Writer) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if cfgWidth > 0 {
		return cfgWidth
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return config.FallbackWidth
}

func runPager(doc *markdown.Document, cfg config.Config, path string, load func() (*markdown.Document, error)) error {
	popts := pager.Options{
		Theme:        cfg.Theme,
		BlockSpacing: cfg.BlockSpacing,
		Keys:         cfg.Keys,
	}
	if path != "-" {
		popts.Path = path
		popts.Load = load
	}
	m, err := pager.New(doc, popts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, pagerProgramOptions(path)...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

// pagerProgramOptions 在文档来自标准输入时改从终端读取按键。
func pagerProgramOptions(path string) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if path == "-" {
		opts = append(opts, tea.WithInputTTY())
	}
	return opts
}

// jsonRenderer 输出与 -debug 相同的布局 JSON。
type jsonRenderer struct{}

func (jsonRenderer) Render(result *layout.Result) ([]byte, error) {
	return layout.MarshalDebugJSON(result)
}

func outputName(input, format string) string {
	if input == "-" {
		return "quill." + format
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
