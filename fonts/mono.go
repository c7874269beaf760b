package fonts

import (
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

// Family 是内置等宽字体的名称。
const Family = "Go Mono"

// Mono 返回内置 Go Mono 字体对应样式的 TTF 数据。
// 排版假定每个字符占一个单元格，因此只提供等宽字体。
func Mono(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gomonobolditalic.TTF
	case bold:
		return gomonobold.TTF
	case italic:
		return gomonoitalic.TTF
	default:
		return gomono.TTF
	}
}
