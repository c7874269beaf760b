// Package config loads quill's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/pager"
	"github.com/ByLCY/quill/renderer"
	canvasrenderer "github.com/ByLCY/quill/renderer/canvas"
)

// 支持的输出格式。
var Formats = []string{"ansi", "pager", "json", canvasrenderer.FormatPDF, canvasrenderer.FormatSVG, canvasrenderer.FormatPNG}

// FallbackWidth is used when neither flags, config nor the terminal give a width.
const FallbackWidth = 80

// Config mirrors config.toml.
type Config struct {
	// Width 为 0 时由终端宽度决定。
	Width        int                 `toml:"width"`
	Format       string              `toml:"format"`
	BlockSpacing int                 `toml:"block_spacing"`
	Theme        renderer.Theme      `toml:"theme"`
	PDF          PDFConfig           `toml:"pdf"`
	Keys         map[string][]string `toml:"keys"`
}

// PDFConfig holds canvas output settings. Lengths use the "10pt" / "12mm" notation.
type PDFConfig struct {
	FontSize   string  `toml:"font_size"`
	Margin     string  `toml:"margin"`
	PageHeight string  `toml:"page_height"`
	Resolution float64 `toml:"resolution"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:       "pager",
		BlockSpacing: layout.DefaultBlockSpacing,
		Theme:        renderer.DefaultTheme(),
		PDF: PDFConfig{
			FontSize:   "10pt",
			Margin:     "12mm",
			PageHeight: "297mm",
			Resolution: 8,
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys maps pager actions to key sequences.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		"down":      {"j", "down", "enter"},
		"up":        {"k", "up"},
		"half_down": {"ctrl+d", "d"},
		"half_up":   {"ctrl+u", "u"},
		"page_down": {"space", "pgdown", "f"},
		"page_up":   {"pgup", "b"},
		"top":       {"g g", "home"},
		"bottom":    {"G", "end"},
		"reload":    {"r"},
		"quit":      {"q", "ctrl+c", "esc"},
	}
}

// Dir returns the directory holding config.toml.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.Join(err, herr)
		}
		return filepath.Join(home, ".quill"), nil
	}
	return filepath.Join(dir, "quill"), nil
}

// DefaultPath returns <config dir>/quill/config.toml, or "" when unknown.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads path on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Decode(string(data))
}

// Decode parses TOML text on top of Default and validates the result.
func Decode(text string) (Config, error) {
	cfg := Default()
	cfg.Keys = map[string][]string{}
	md, err := toml.Decode(os.ExpandEnv(text), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Printf("config: ignoring unknown keys: %s", strings.Join(keys, ", "))
	}
	// 用户只覆盖其声明的动作，其余沿用默认绑定
	for action, seqs := range DefaultKeys() {
		if _, ok := cfg.Keys[action]; !ok {
			cfg.Keys[action] = seqs
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("config: width must be >= 0, got %d", c.Width)
	}
	if c.BlockSpacing < 0 {
		return fmt.Errorf("config: block_spacing must be >= 0, got %d", c.BlockSpacing)
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("config: unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	for name, col := range map[string]string{
		"text":            c.Theme.Text,
		"heading":         c.Theme.Heading,
		"code":            c.Theme.Code,
		"code_background": c.Theme.CodeBackground,
	} {
		if col != "" && !hexColor.MatchString(col) {
			return fmt.Errorf("config: theme.%s must look like #rrggbb, got %q", name, col)
		}
	}
	if _, err := c.CanvasOptions(""); err != nil {
		return err
	}
	// 动作名与键序列冲突在加载时就报出来，而不是等到打开阅读器
	if _, err := pager.BuildBindings(c.Keys); err != nil {
		return fmt.Errorf("config: keys: %w", err)
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if strings.EqualFold(format, f) {
			return true
		}
	}
	return false
}

// BuildOptions converts the layout settings for the given width.
func (c Config) BuildOptions(width int) layout.BuildOptions {
	return layout.BuildOptions{Width: width, BlockSpacing: c.BlockSpacing}
}

// CanvasOptions converts the [pdf] table; format overrides c.Format when set.
func (c Config) CanvasOptions(format string) (canvasrenderer.Options, error) {
	opts := canvasrenderer.Options{
		Format:     strings.ToLower(format),
		Resolution: c.PDF.Resolution,
		Theme:      c.Theme,
	}
	if opts.Format == "" {
		opts.Format = canvasrenderer.FormatPDF
	}
	for _, field := range []struct {
		name  string
		value string
		dst   *canvasrenderer.Length
	}{
		{"font_size", c.PDF.FontSize, &opts.FontSize},
		{"margin", c.PDF.Margin, &opts.Margin},
		{"page_height", c.PDF.PageHeight, &opts.PageHeight},
	} {
		if strings.TrimSpace(field.value) == "" {
			continue
		}
		l, err := canvasrenderer.ParseLength(field.value)
		if err != nil {
			return canvasrenderer.Options{}, fmt.Errorf("config: pdf.%s: %w", field.name, err)
		}
		*field.dst = l
	}
	return opts, nil
}
