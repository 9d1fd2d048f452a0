package syntax

import (
	"sort"
	"strings"
)

// Redirect holds the file targets of a redirected command.
type Redirect struct {
	// In is read as standard input when non-empty.
	In string `json:"in,omitempty"`
	// Out receives standard output when non-empty.
	Out string `json:"out,omitempty"`
	// Append preserves the existing contents of Out.
	Append bool `json:"append,omitempty"`
}

// HasRedirect reports whether text contains <, > or >> at depth zero.
func HasRedirect(text string) bool {
	return HasOperator(text, OpInput) || HasOperator(text, OpOutput)
}

// span is a half open byte range of text to cut.
type span struct {
	start, end int
}

// ResolveRedirect extracts the first depth zero input redirection and the
// first depth zero output redirection from text. It returns the targets and
// the text with both operators and their targets removed.
//
// A target is the single word following the operator. Words end at
// whitespace or at an operator character.
func ResolveRedirect(text string) (Redirect, string, error) {
	var (
		redir Redirect
		cuts  []span
	)

	if i := IndexTopLevel(text, OpInput); i >= 0 {
		target, end, err := targetAfter(text, i, i+1)
		if err != nil {
			return Redirect{}, "", err
		}
		redir.In = target
		cuts = append(cuts, span{i, end})
	}

	if i := IndexTopLevel(text, OpOutput); i >= 0 {
		opEnd := i + 1
		if opEnd < len(text) && text[opEnd] == OpOutput {
			redir.Append = true
			opEnd++
		}
		target, end, err := targetAfter(text, i, opEnd)
		if err != nil {
			return Redirect{}, "", err
		}
		redir.Out = target
		cuts = append(cuts, span{i, end})
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	var pieces []string
	prev := 0
	for _, c := range append(cuts, span{len(text), len(text)}) {
		if piece := strings.TrimSpace(text[prev:c.start]); piece != "" {
			pieces = append(pieces, piece)
		}
		prev = c.end
	}

	return redir, strings.Join(pieces, " "), nil
}

// targetAfter reads the word starting at or after from. op is the index of
// the operator the word belongs to and is only used for error reporting.
func targetAfter(text string, op, from int) (string, int, error) {
	start := from
	for start < len(text) && isSpace(text[start]) {
		start++
	}

	end := start
	for end < len(text) && !isSpace(text[end]) && !isOperator(text[end]) {
		end++
	}

	if start == end {
		return "", 0, newError(text, op, "%q requires a file path", text[op:from])
	}
	return text[start:end], end, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
