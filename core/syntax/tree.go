package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Node is one unit of a classified command. Trees are only built for
// display; the interpreter classifies text again at every level.
type Node struct {
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text"`
	Args     []string  `json:"args,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
	Children []*Node   `json:"children,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Parse classifies text recursively, the same way the interpreter would
// while running it. Malformed units are recorded on their node and the first
// such error is returned alongside the tree.
func Parse(text string) (*Node, error) {
	var first error
	node := parse(text, func(err error) {
		if first == nil {
			first = err
		}
	})
	return node, first
}

func parse(text string, report func(error)) *Node {
	text = strings.TrimSpace(text)
	node := &Node{Kind: Classify(text), Text: text}

	fail := func(err error) *Node {
		node.Error = err.Error()
		report(err)
		return node
	}

	switch node.Kind {
	case KindBatch:
		for _, item := range SplitTopLevel(text, OpBatch) {
			node.Children = append(node.Children, parse(item, report))
		}
	case KindPipeline:
		for _, stage := range SplitTopLevel(text, OpPipe) {
			node.Children = append(node.Children, parse(stage, report))
		}
	case KindRedirect:
		redir, residual, err := ResolveRedirect(text)
		if err != nil {
			return fail(err)
		}
		node.Redirect = &redir
		node.Children = []*Node{parse(residual, report)}
	case KindSubshell:
		inner, err := ExtractGroup(text)
		if err != nil {
			return fail(err)
		}
		node.Children = []*Node{parse(inner, report)}
	case KindBuiltin, KindSimple:
		args, err := Fields(text)
		if err != nil {
			return fail(err)
		}
		node.Args = args
	}

	return node
}

// Format writes an indented, one unit per line rendering of the tree.
func (n *Node) Format(w io.Writer) error {
	return n.format(w, 0)
}

func (n *Node) format(w io.Writer, depth int) error {
	line := fmt.Sprintf("%s%s %q", strings.Repeat("  ", depth), n.Kind, n.Text)
	if n.Args != nil {
		line += fmt.Sprintf(" args=%q", n.Args)
	}
	if r := n.Redirect; r != nil {
		if r.In != "" {
			line += fmt.Sprintf(" in=%q", r.In)
		}
		if r.Out != "" {
			line += fmt.Sprintf(" out=%q", r.Out)
		}
		if r.Append {
			line += " append"
		}
	}
	if n.Error != "" {
		line += fmt.Sprintf(" error=%q", n.Error)
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.format(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
