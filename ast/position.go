package ast

import (
	"fmt"
	"sort"
)

// Position is a resolved source location. Line and Column are 1-based;
// Column counts bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SetLinesForContent records the line starts of content, which begins at
// byte offset base of the positions stored in the tree.
func (f *File) SetLinesForContent(content string, base int) {
	lines := []int{base}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, base+i+1)
		}
	}
	f.lines = lines
}

// Position resolves a byte offset stored in the tree.
func (f *File) Position(offset int) Position {
	if len(f.lines) == 0 {
		return Position{Offset: offset, Line: 1, Column: offset + 1}
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Position{Offset: offset, Line: i + 1, Column: offset - f.lines[i] + 1}
}

// TokensIn returns the leaf tokens covered by n.
func (f *File) TokensIn(n Node) []Token {
	b := n.NodeBase()
	i := sort.Search(len(f.Tokens), func(i int) bool { return f.Tokens[i].Start >= b.Start })
	j := i
	for j < len(f.Tokens) && f.Tokens[j].End <= b.End {
		j++
	}
	return f.Tokens[i:j]
}
