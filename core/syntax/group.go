package syntax

import (
	"strings"
)

// ExtractGroup returns the text enclosed by the first "(" of text and its
// matching ")". Nested groups are captured whole.
//
// Only whitespace may surround the group; redirections around a group are
// resolved before the group is extracted.
func ExtractGroup(text string) (string, error) {
	open := strings.IndexByte(text, OpOpen)
	if stray := IndexTopLevel(text, OpClose); stray >= 0 && (open < 0 || stray < open) {
		return "", newError(text, stray, "unexpected %q", string(OpClose))
	}
	if open < 0 {
		return "", newError(text, len(text), "expected %q", string(OpOpen))
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case OpOpen:
			depth++
		case OpClose:
			depth--
			if depth > 0 {
				continue
			}

			if strings.TrimSpace(text[:open]) != "" {
				return "", newError(text, 0, "unexpected text before %q", string(OpOpen))
			}
			if strings.TrimSpace(text[i+1:]) != "" {
				return "", newError(text, i+1, "unexpected text after %q", string(OpClose))
			}
			return text[open+1 : i], nil
		}
	}

	return "", newError(text, open, "missing %q to match %q", string(OpClose), string(OpOpen))
}
