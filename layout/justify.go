package layout

// spreadEvenly 两端对齐：把剩余宽度平均分到各个间隙，余数由 SampleGaps
// 选出的间隙各多拿一个空格。只有一个单词时退化为左对齐。
func (w wordsInLine) spreadEvenly() Line {
	if len(w.words) == 1 {
		return w.alignLeft()
	}

	gaps := len(w.words) - 1
	base := w.remaining / gaps
	extra := w.remaining - gaps*base

	picked := make([]bool, gaps)
	for _, gap := range SampleGaps(extra, gaps) {
		picked[gap] = true
	}

	elements := make([]Element, 0, 2*len(w.words)-1)
	for i, word := range w.words {
		elements = append(elements, Word(word))
		if i == gaps {
			break
		}
		// 开头的 1 是装行时从 remaining 中预留出去的必需空格。
		spaces := 1 + base
		if picked[i] {
			spaces++
		}
		elements = append(elements, Space(spaces))
	}
	return Line{Elements: elements}
}

// alignLeft 左对齐：单词之间各一个空格，剩余宽度全部放到行尾。
func (w wordsInLine) alignLeft() Line {
	elements := make([]Element, 0, 2*len(w.words))
	for i, word := range w.words {
		if i > 0 {
			elements = append(elements, Space(1))
		}
		elements = append(elements, Word(word))
	}
	if w.remaining > 0 {
		elements = append(elements, Space(w.remaining))
	}
	return Line{Elements: elements}
}
