package layout

import "github.com/ByLCY/quill/markdown"

// splitLongWords 把长度超过 width 的单词切成若干段，每段恰好 width 个字符，
// 最后一段为余下部分。切分只看单词本身，与之后落在哪一行无关。
func splitLongWords(width int, words []markdown.StyledWord) []markdown.StyledWord {
	out := make([]markdown.StyledWord, 0, len(words))
	for _, word := range words {
		for word.Len() > width {
			var head markdown.StyledWord
			head, word = word.SplitAt(width)
			out = append(out, head)
		}
		out = append(out, word)
	}
	return out
}
