// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import "github.com/dennwc/webidl/v2/ast"

// nodeStack tracks the nodes under construction; errors are attached to
// the top one.
type nodeStack struct {
	nodes []ast.Node
}

func (s *nodeStack) topValue() ast.Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[len(s.nodes)-1]
}

// push pushes a node onto the stack.
func (s *nodeStack) push(value ast.Node) {
	s.nodes = append(s.nodes, value)
}

// pop removes the node from the stack and returns it.
func (s *nodeStack) pop() ast.Node {
	top := s.topValue()
	if top != nil {
		s.nodes = s.nodes[:len(s.nodes)-1]
	}
	return top
}

func (s *nodeStack) size() int {
	return len(s.nodes)
}
