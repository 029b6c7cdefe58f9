package qtio

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	glyphLast = "┗"
	glyphMid  = "┣"
)

func printAtom(out io.Writer, node Atom, depth int, last bool) {
	glyph := glyphMid
	if last {
		glyph = glyphLast
	}
	offset, size := node.Pos()
	fmt.Fprintf(out, "%s%s %s offset=%d size=%d",
		strings.Repeat("  ", depth), glyph, node.Tag(), offset, size)
	if str, ok := node.(fmt.Stringer); ok {
		fmt.Fprint(out, " ", str.String())
	}
	fmt.Fprintln(out)

	children := node.Children()
	for i, child := range children {
		printAtom(out, child, depth+1, i == len(children)-1)
	}
}

// FprintAtom renders a parsed tree one line per atom, depth-first in file
// order: two spaces of indent per level, then a branch glyph (┗ for the
// last sibling, ┣ otherwise), the type code and a one-line summary.
func FprintAtom(out io.Writer, root Atom) {
	printAtom(out, root, 0, true)
}

func PrintAtom(root Atom) {
	FprintAtom(os.Stdout, root)
}

// FprintParseResult renders either outcome of a parse: the tree on
// success, a single line holding the error description otherwise.
func FprintParseResult(out io.Writer, root Atom, err error) {
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	FprintAtom(out, root)
}

// SprintAtom renders the tree to a string.
func SprintAtom(root Atom) string {
	var sb strings.Builder
	FprintAtom(&sb, root)
	return sb.String()
}
