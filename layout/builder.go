package layout

import (
	"fmt"

	"github.com/ByLCY/quill/markdown"
)

// Build 对文档中的每个块分别调用 Calculate，得到整篇文档的排版结果。
// 与 Calculate 不同，这里把非法宽度当作配置错误返回，而不是 panic。
func Build(doc *markdown.Document, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("layout: 文档为空")
	}
	if opts.Width < 1 {
		return nil, fmt.Errorf("layout: 目标宽度必须至少为 1，实际为 %d", opts.Width)
	}
	if opts.BlockSpacing < 0 {
		return nil, fmt.Errorf("layout: 块间距不能为负数，实际为 %d", opts.BlockSpacing)
	}

	res := &Result{
		Width:        opts.Width,
		BlockSpacing: opts.BlockSpacing,
		Blocks:       make([]BlockLayout, 0, len(doc.Blocks)),
	}
	for _, block := range doc.Blocks {
		if len(block.Words) == 0 {
			continue
		}
		words := block.Words
		if block.Kind == markdown.BlockHeading {
			words = withStyle(words, opts.headingStyle())
		}
		res.Blocks = append(res.Blocks, BlockLayout{
			Kind:  block.Kind,
			Level: block.Level,
			Lines: Calculate(opts.Width, words),
		})
	}
	return res, nil
}

// withStyle 返回叠加了 style 的单词副本，不修改文档本身。
func withStyle(words []markdown.StyledWord, style markdown.Style) []markdown.StyledWord {
	out := make([]markdown.StyledWord, len(words))
	for i, w := range words {
		out[i] = markdown.StyledWord{Text: w.Text, Style: w.Style.Merge(style)}
	}
	return out
}
