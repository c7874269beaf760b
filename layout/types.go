package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ByLCY/quill/markdown"
)

// 该文件定义排版结果的数据结构，供排版计算、渲染与调试 JSON 共用。

// ElementKind 区分行内元素是单词还是空白。
type ElementKind int

const (
	ElementWord ElementKind = iota
	ElementSpace
)

// Element 是排好的一行中的一个元素：单词或若干个空格。
type Element struct {
	Kind   ElementKind
	Word   markdown.StyledWord
	Spaces int
}

// Word 构造单词元素。
func Word(w markdown.StyledWord) Element {
	return Element{Kind: ElementWord, Word: w}
}

// Space 构造宽度为 n 的空白元素；n 必须为正数，宽度为 0 的空白属于调用方错误。
func Space(n int) Element {
	if n < 1 {
		panic(fmt.Sprintf("layout: 空白宽度必须为正数，实际为 %d", n))
	}
	return Element{Kind: ElementSpace, Spaces: n}
}

// Width 返回元素占用的字符单位数。
func (e Element) Width() int {
	if e.Kind == ElementSpace {
		return e.Spaces
	}
	return e.Word.Len()
}

type elementJSON struct {
	Word   string          `json:"word,omitempty"`
	Style  *markdown.Style `json:"style,omitempty"`
	Spaces int             `json:"spaces,omitempty"`
}

// MarshalJSON 把单词输出为 {"word","style"}，空白输出为 {"spaces"}。
func (e Element) MarshalJSON() ([]byte, error) {
	if e.Kind == ElementSpace {
		return json.Marshal(elementJSON{Spaces: e.Spaces})
	}
	style := e.Word.Style
	return json.Marshal(elementJSON{Word: e.Word.Text, Style: &style})
}

// Line 是一行排版结果。由 Calculate 产生的每一行宽度都恰好等于目标宽度。
type Line struct {
	Elements []Element `json:"elements"`
}

// Width 返回该行所有单词长度与空白宽度之和。
func (l Line) Width() int {
	total := 0
	for _, e := range l.Elements {
		total += e.Width()
	}
	return total
}

// Words 返回该行中的单词，按出现顺序。
func (l Line) Words() []markdown.StyledWord {
	var out []markdown.StyledWord
	for _, e := range l.Elements {
		if e.Kind == ElementWord {
			out = append(out, e.Word)
		}
	}
	return out
}

// String 返回该行的纯文本形式，空白展开为空格。
func (l Line) String() string {
	var b strings.Builder
	for _, e := range l.Elements {
		if e.Kind == ElementSpace {
			b.WriteString(strings.Repeat(" ", e.Spaces))
			continue
		}
		b.WriteString(e.Word.Text)
	}
	return b.String()
}

// wordsInLine 是装行阶段的中间结果：remaining 是放下所有单词、
// 并为每个内部间隙预留一个必需空格之后剩下的宽度。
type wordsInLine struct {
	words     []markdown.StyledWord
	remaining int
}

// Result 保存整篇文档的排版结果。
type Result struct {
	Width        int           `json:"width"`
	BlockSpacing int           `json:"blockSpacing"`
	Blocks       []BlockLayout `json:"blocks"`
}

// BlockLayout 记录一个段落或标题排版后的行。
type BlockLayout struct {
	Kind  markdown.BlockKind `json:"kind"`
	Level int                `json:"level,omitempty"`
	Lines []Line             `json:"lines"`
}

// Row 是渲染器逐行输出时使用的视图。Spacer 表示块之间的空行，
// Heading 为标题级别，段落行为 0。
type Row struct {
	Line    Line
	Heading int
	Spacer  bool
}

// Rows 按渲染顺序展开所有块，并在块之间插入 BlockSpacing 个空行。
// 空行同样满足宽度不变式：它只包含一个宽度为 Width 的空白元素。
func (r *Result) Rows() []Row {
	if r == nil {
		return nil
	}
	var rows []Row
	for i, block := range r.Blocks {
		if i > 0 {
			for s := 0; s < r.BlockSpacing; s++ {
				rows = append(rows, Row{Line: blankLine(r.Width), Spacer: true})
			}
		}
		heading := 0
		if block.Kind == markdown.BlockHeading {
			heading = block.Level
			if heading == 0 {
				heading = 1
			}
		}
		for _, line := range block.Lines {
			rows = append(rows, Row{Line: line, Heading: heading})
		}
	}
	return rows
}

// Lines 返回 Rows 中的行，不带块信息。
func (r *Result) Lines() []Line {
	rows := r.Rows()
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.Line)
	}
	return lines
}

func blankLine(width int) Line {
	return Line{Elements: []Element{Space(width)}}
}
