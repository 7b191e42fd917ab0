package parser

import (
	"io"

	"github.com/dennwc/webidl/v2/ast"
	"github.com/kr/pretty"
)

// Dump writes the Go representation of a syntax tree to w. The token list
// of a file is left out; it repeats what the tree already spans.
func Dump(w io.Writer, n ast.Node) error {
	_, err := pretty.Fprintf(w, "%# v", withoutTokens(n))
	return err
}

// DumpString returns the Go representation of v, which is a node or any
// other value such as the error list returned by ast.Errors.
func DumpString(v interface{}) string {
	if n, ok := v.(ast.Node); ok {
		v = withoutTokens(n)
	}
	return pretty.Sprintf("%# v", v)
}

func withoutTokens(n ast.Node) interface{} {
	f, ok := n.(*ast.File)
	if !ok || f == nil || len(f.Tokens) == 0 {
		return n
	}
	c := *f
	c.Tokens = nil
	return &c
}
