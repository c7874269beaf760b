package renderer

import "github.com/ByLCY/quill/layout"

// Renderer 将排版结果输出为最终格式，例如 ANSI 文本、PDF 或图像。
// Render 返回生成的数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Theme 描述渲染时使用的颜色，取值为 "#rrggbb" 形式；空字符串表示使用输出端默认颜色。
type Theme struct {
	Text           string `toml:"text"`
	Heading        string `toml:"heading"`
	Code           string `toml:"code"`
	CodeBackground string `toml:"code_background"`
}

// DefaultTheme 返回默认配色。
func DefaultTheme() Theme {
	return Theme{
		Text:           "#1e1e1e",
		Heading:        "#0f62fe",
		Code:           "#a626a4",
		CodeBackground: "#f2f2f2",
	}
}
