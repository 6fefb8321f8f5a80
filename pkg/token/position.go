package token

import (
	"github.com/mattn/go-runewidth"
)

// AssignPositions numbers toks in order and sets each token's 1-based line and
// display column from the content before it. Tabs advance to the next multiple
// of tabWidth; wide runes count double. Tokenizers call this last.
func AssignPositions(toks []Token, tabWidth int) {
	if tabWidth < 1 {
		tabWidth = 1
	}

	line, col := 1, 1
	for i := range toks {
		toks[i].Index = i
		toks[i].Line = line
		toks[i].Column = col

		for _, r := range toks[i].Content {
			switch r {
			case '\n':
				line++
				col = 1
			case '\t':
				col += tabWidth - (col-1)%tabWidth
			default:
				col += runewidth.RuneWidth(r)
			}
		}
	}
}
