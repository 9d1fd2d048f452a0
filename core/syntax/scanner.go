package syntax

import "strings"

// Operator characters.
const (
	OpBatch  byte = ';'
	OpPipe   byte = '|'
	OpInput  byte = '<'
	OpOutput byte = '>'
	OpOpen   byte = '('
	OpClose  byte = ')'
)

// operators holds every byte that terminates a word.
const operators = ";|<>()"

func isOperator(c byte) bool {
	return strings.IndexByte(operators, c) >= 0
}

// IndexTopLevel returns the index of the first occurrence of op outside of any
// parentheses, or -1 if there is none.
//
// Depth is checked before it is updated, so an opening parenthesis counts at
// the depth it opens from and a closing parenthesis only counts when it has
// no opener. An unmatched closing parenthesis leaves depth at zero.
func IndexTopLevel(text string, op byte) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == op && depth == 0 {
			return i
		}

		switch c {
		case OpOpen:
			depth++
		case OpClose:
			if depth > 0 {
				depth--
			}
		}
	}
	return -1
}

// HasOperator reports whether op occurs at depth zero.
func HasOperator(text string, op byte) bool {
	return IndexTopLevel(text, op) >= 0
}

// SplitTopLevel splits text on every depth zero occurrence of op. Each piece
// is trimmed and empty pieces are dropped.
func SplitTopLevel(text string, op byte) []string {
	var out []string
	add := func(piece string) {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}

	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == op && depth == 0 {
			add(text[start:i])
			start = i + 1
			continue
		}

		switch c {
		case OpOpen:
			depth++
		case OpClose:
			if depth > 0 {
				depth--
			}
		}
	}
	add(text[start:])

	return out
}
