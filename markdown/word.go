package markdown

import (
	"fmt"
	"unicode/utf8"
)

// Style 是三个互相独立的文本样式标记，任意组合都合法。
type Style struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Code   bool `json:"code,omitempty"`
}

// Merge 返回两个样式按位或之后的结果。
func (s Style) Merge(other Style) Style {
	return Style{
		Bold:   s.Bold || other.Bold,
		Italic: s.Italic || other.Italic,
		Code:   s.Code || other.Code,
	}
}

// StyledWord 是一段不含空白的文本及其样式。
// Text 通常直接切自源文本，不做额外拷贝。
type StyledWord struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// PlainWord 构造一个无样式的单词。
func PlainWord(text string) StyledWord {
	return StyledWord{Text: text}
}

// Len 返回单词长度，按字符（rune）计数，每个字符占一个单位宽度。
func (w StyledWord) Len() int {
	return utf8.RuneCountInString(w.Text)
}

// SplitAt 在第 n 个字符处把单词切成两段，两段沿用原样式。
func (w StyledWord) SplitAt(n int) (StyledWord, StyledWord) {
	if n < 0 || n > w.Len() {
		panic(fmt.Sprintf("markdown: 切分位置 %d 超出单词 %q 的长度", n, w.Text))
	}
	offset := 0
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRuneInString(w.Text[offset:])
		offset += size
	}
	return StyledWord{Text: w.Text[:offset], Style: w.Style},
		StyledWord{Text: w.Text[offset:], Style: w.Style}
}

func (w StyledWord) String() string { return w.Text }
