package layout

import "github.com/ByLCY/quill/markdown"

// DefaultBlockSpacing 是块与块之间默认插入的空行数。
const DefaultBlockSpacing = 1

// BuildOptions 配置整篇文档的排版。
type BuildOptions struct {
	Width        int            // 目标宽度（字符单位），必须 >= 1
	BlockSpacing int            // 块之间的空行数
	HeadingStyle markdown.Style // 叠加到标题单词上的样式，零值表示加粗
}

func (o BuildOptions) headingStyle() markdown.Style {
	if o.HeadingStyle == (markdown.Style{}) {
		return markdown.Style{Bold: true}
	}
	return o.HeadingStyle
}
