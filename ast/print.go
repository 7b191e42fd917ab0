package ast

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Format renders n as a single-line S-expression:
//
//	(interface name: (identifier "Foo") body: (interface_members))
//
// Modifiers appear as bare field names, token values are quoted, and error
// nodes embedded in a node follow its fields as "errors:" entries.
func Format(n Node) string {
	var buf bytes.Buffer
	writeNode(&buf, n, -1)
	return buf.String()
}

// Fprint writes n to w as an indented S-expression, one named child node per
// line.
func Fprint(w io.Writer, n Node) error {
	var buf bytes.Buffer
	writeNode(&buf, n, 0)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// writeNode renders n; depth < 0 selects the single-line form.
func writeNode(buf *bytes.Buffer, n Node, depth int) {
	buf.WriteByte('(')
	buf.WriteString(n.Kind())
	sep := func() {
		if depth < 0 {
			buf.WriteByte(' ')
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth+1))
	}
	child := depth
	if depth >= 0 {
		child = depth + 1
	}
	for _, f := range Fields(n) {
		switch {
		case f.Flag:
			buf.WriteByte(' ')
			buf.WriteString(f.Name)
		case f.Nodes == nil:
			buf.WriteByte(' ')
			if f.Name != "" {
				buf.WriteString(f.Name)
				buf.WriteString(": ")
			}
			buf.WriteString(strconv.Quote(f.Text))
		default:
			for _, c := range f.Nodes {
				sep()
				buf.WriteString(f.Name)
				buf.WriteString(": ")
				writeNode(buf, c, child)
			}
		}
	}
	if _, isErr := n.(*ErrorNode); !isErr {
		for _, e := range n.NodeBase().Errors {
			sep()
			buf.WriteString("errors: ")
			writeNode(buf, e, child)
		}
	}
	buf.WriteByte(')')
}
