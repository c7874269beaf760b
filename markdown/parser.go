package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	mdLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Break", Pattern: `\r?\n[ \t]*\r?\n\s*`},
		{Name: "Newline", Pattern: `\r?\n`},
		// 与 unicode.IsSpace 一致，NBSP 与全角空格同样分隔单词。
		{Name: "Whitespace", Pattern: `[ \t\r\f\v\x{85}\p{Z}]+`},
		{Name: "Hash", Pattern: `#{1,6}`},
		{Name: "Code", Pattern: "`[^`\\n]*`"},
		{Name: "Strong", Pattern: `\*\*`},
		{Name: "Emph", Pattern: `\*`},
		{Name: "Tick", Pattern: "`"},
		{Name: "Text", Pattern: "[^\\s\\v\\x{85}\\p{Z}*`#]+"},
	})

	tokenNames = invertSymbols(mdLexer.Symbols())

	sourceParser = participle.MustBuild[Source](
		participle.Lexer(mdLexer),
	)
)

// Source is the flat token stream of a markdown file. Block structure is
// recovered from it by the document builder, not by the grammar.
type Source struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Tokens []*Token       `parser:"@@*"`
}

// Token captures a single lexical token.
type Token struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so every token is kept, whitespace included.
func (t *Token) Parse(lex *lexer.PeekingLexer) error {
	if tok := lex.Peek(); tok == nil || tok.EOF() {
		return participle.NextMatch
	}
	tok := lex.Next()
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	*t = Token{Type: name, Value: tok.Value, Pos: tok.Pos}
	return nil
}

// BlockKind distinguishes headings from paragraphs.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// MarshalText keeps debug JSON readable.
func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Block is one paragraph or heading as a sequence of styled words.
type Block struct {
	Kind  BlockKind    `json:"kind"`
	Level int          `json:"level,omitempty"`
	Words []StyledWord `json:"words"`
}

// Document is the parsed markdown file.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Words returns every word of the document in order.
func (d *Document) Words() []StyledWord {
	if d == nil {
		return nil
	}
	var out []StyledWord
	for _, b := range d.Blocks {
		out = append(out, b.Words...)
	}
	return out
}

// Parse reads markdown from r.
func Parse(r io.Reader) (*Document, error) {
	src, err := sourceParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return buildDocument(src.Tokens), nil
}

// ParseString parses markdown held in a string.
func ParseString(input string) (*Document, error) {
	src, err := sourceParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return buildDocument(src.Tokens), nil
}

type docBuilder struct {
	doc       Document
	block     Block
	style     Style
	pieces    []string
	lineStart bool
}

func buildDocument(tokens []*Token) *Document {
	b := &docBuilder{lineStart: true}
	for i, tok := range tokens {
		switch tok.Type {
		case "Break":
			b.endBlock()
			b.lineStart = true
			continue
		case "Newline":
			b.flushWord()
			if b.block.Kind == BlockHeading {
				b.endBlock()
			}
			b.lineStart = true
			continue
		case "Whitespace":
			b.flushWord()
			continue
		case "Hash":
			if b.lineStart && followedBySpace(tokens, i) {
				b.endBlock()
				b.block.Kind = BlockHeading
				b.block.Level = len(tok.Value)
				b.lineStart = false
				continue
			}
			b.pieces = append(b.pieces, tok.Value)
		case "Strong":
			b.flushWord()
			b.style.Bold = !b.style.Bold
		case "Emph":
			b.flushWord()
			b.style.Italic = !b.style.Italic
		case "Code":
			b.flushWord()
			code := b.style
			code.Code = true
			for _, field := range strings.Fields(strings.Trim(tok.Value, "`")) {
				b.block.Words = append(b.block.Words, StyledWord{Text: field, Style: code})
			}
		default:
			b.pieces = append(b.pieces, tok.Value)
		}
		b.lineStart = false
	}
	b.endBlock()
	return &b.doc
}

// followedBySpace reports whether the token after i is whitespace or ends the line.
func followedBySpace(tokens []*Token, i int) bool {
	if i+1 >= len(tokens) {
		return true
	}
	switch tokens[i+1].Type {
	case "Whitespace", "Newline", "Break":
		return true
	default:
		return false
	}
}

func (b *docBuilder) flushWord() {
	switch len(b.pieces) {
	case 0:
		return
	case 1:
		b.block.Words = append(b.block.Words, StyledWord{Text: b.pieces[0], Style: b.style})
	default:
		b.block.Words = append(b.block.Words, StyledWord{Text: strings.Join(b.pieces, ""), Style: b.style})
	}
	b.pieces = b.pieces[:0]
}

// endBlock closes the current block; unterminated emphasis does not leak into the next one.
func (b *docBuilder) endBlock() {
	b.flushWord()
	if len(b.block.Words) > 0 {
		b.doc.Blocks = append(b.doc.Blocks, b.block)
	}
	b.block = Block{}
	b.style = Style{}
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}
