package ast

import "sort"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a syntax tree in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range Children(node) {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a syntax tree in depth-first order, calling f for each
// node and then with nil after the children of a node. Children are skipped
// when f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Errors returns every error node in the tree rooted at n, both the ones
// standing in for a skipped definition and the ones embedded in a node,
// ordered by offset.
func Errors(n Node) []*ErrorNode {
	var out []*ErrorNode
	Inspect(n, func(n Node) bool {
		if n == nil {
			return false
		}
		if e, ok := n.(*ErrorNode); ok {
			out = append(out, e)
		}
		out = append(out, n.NodeBase().Errors...)
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// HasErrors reports whether the tree rooted at n contains an error node.
func HasErrors(n Node) bool {
	return len(Errors(n)) != 0
}
