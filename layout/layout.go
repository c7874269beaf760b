package layout

import (
	"fmt"

	"github.com/ByLCY/quill/markdown"
)

// Calculate 把单词序列排成宽度恰好为 width 的若干行：
// 先切分过长的单词，再贪心装行，除最后一行外都两端对齐，最后一行左对齐并在行尾补空白。
// 结果只取决于输入，可以被多个 goroutine 同时调用。width < 1 属于调用方错误，直接 panic。
func Calculate(width int, words []markdown.StyledWord) []Line {
	if width < 1 {
		panic(fmt.Sprintf("layout: 目标宽度必须至少为 1，实际为 %d", width))
	}
	packed := packLines(width, splitLongWords(width, words))
	lines := make([]Line, 0, len(packed))
	for i, line := range packed {
		if i == len(packed)-1 {
			lines = append(lines, line.alignLeft())
			continue
		}
		lines = append(lines, line.spreadEvenly())
	}
	return lines
}
