package layout

import "github.com/ByLCY/quill/markdown"

// packLines 用首次适配（first-fit）的贪心策略把单词装进行中，不回溯。
// words 中每个单词都不能长于 width，因此每一行至少有一个单词。
func packLines(width int, words []markdown.StyledWord) []wordsInLine {
	var lines []wordsInLine
	for len(words) > 0 {
		line := wordsInLine{remaining: width}
		for {
			word := words[0]
			words = words[1:]
			line.words = append(line.words, word)
			line.remaining -= word.Len()

			// 剩余宽度放不下“一个空格 + 下一个单词”时本行结束。
			if len(words) == 0 || line.remaining <= words[0].Len() {
				break
			}
			line.remaining--
		}
		lines = append(lines, line)
	}
	return lines
}
