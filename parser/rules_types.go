// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/dennwc/webidl/v2/ast"
)

var (
	stringTypes = map[string]bool{
		"ByteString": true,
		"DOMString":  true,
		"USVString":  true,
	}
	builtinTypes = map[string]bool{
		"any":       true,
		"object":    true,
		"symbol":    true,
		"undefined": true,
	}
	scalarTypes = map[string]bool{
		"boolean": true,
		"byte":    true,
		"octet":   true,
		"bigint":  true,
	}
	numericWords = map[string]bool{
		"unsigned":     true,
		"unrestricted": true,
		"short":        true,
		"long":         true,
		"float":        true,
		"double":       true,
	}
)

// isPrimitiveStart reports whether the current token begins a primitive type.
func (p *sourceParser) isPrimitiveStart() bool {
	if !p.currentToken.isKeyword() {
		return false
	}
	v := p.currentToken.value
	return numericWords[v] || scalarTypes[v]
}

// consumeTypeArgument consumes a type that may carry extended attributes,
// as used for type parameters, union members and optional arguments.
func (p *sourceParser) consumeTypeArgument() ast.Type {
	if p.isToken(tokenTypeLeftBracket) {
		return p.consumeTypeWithExtendedAttributes()
	}
	return p.consumeType()
}

// consumeTypeWithExtendedAttributes consumes "[ExtAttrs] Type". The list is
// optional; the node is returned even when the type is missing.
func (p *sourceParser) consumeTypeWithExtendedAttributes() *ast.TypeWithExtendedAttributes {
	n := &ast.TypeWithExtendedAttributes{}
	defer p.node(n)()

	n.Attributes = p.tryConsumeExtendedAttributeList()
	n.Type = p.consumeType()
	return n
}

// consumeType consumes a union, a promise or a single type.
func (p *sourceParser) consumeType() ast.Type {
	switch {
	case p.isToken(tokenTypeLeftParen):
		return p.consumeUnionType()
	case p.isKeyword("Promise") && p.isNextToken(tokenTypeLeftTri):
		return p.consumePromiseType()
	}
	if t := p.consumeSingleType(); t != nil {
		return t
	}
	return nil
}

// consumeUnionType consumes "(A or B [or C...])[?]".
func (p *sourceParser) consumeUnionType() *ast.UnionType {
	n := &ast.UnionType{}
	defer p.node(n)()
	p.unionDepth++
	defer func() { p.unionDepth-- }()

	p.consume(tokenTypeLeftParen)
	for {
		t := p.consumeTypeArgument()
		if t == nil {
			return n
		}
		n.MemberTypes = append(n.MemberTypes, t)
		if !p.tryConsumeKeyword("or") {
			break
		}
	}
	if len(n.MemberTypes) < 2 {
		p.emitError("Union types need at least two member types, found %s", p.describeCurrent())
	}
	if _, ok := p.consume(tokenTypeRightParen); !ok {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeQuestionMark); ok {
		n.Nullable = true
		p.rejectNullable()
	}
	return n
}

// consumePromiseType consumes "Promise<T>". Promises are never nullable.
func (p *sourceParser) consumePromiseType() *ast.PromiseType {
	n := &ast.PromiseType{}
	defer p.node(n)()

	p.consumeKeyword("Promise")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if n.ResolveType = p.consumeTypeArgument(); n.ResolveType == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeRightTri); !ok {
		return n
	}
	p.rejectNullable()
	return n
}

// rejectNullable reports and skips a '?' where no more nullability is allowed.
func (p *sourceParser) rejectNullable() {
	if p.isToken(tokenTypeQuestionMark) {
		p.emitError("Type cannot be nullable here")
		p.consumeToken()
	}
}

// consumeSingleType consumes a non-union, non-promise type and its optional
// nullable suffix, which binds to it alone.
func (p *sourceParser) consumeSingleType() ast.SingleType {
	start := p.currentToken
	start.comments = nil

	t := p.consumeNonNullableType()
	if t == nil {
		return nil
	}
	if !p.isToken(tokenTypeQuestionMark) {
		return t
	}

	n := &ast.NullableType{Type: t}
	defer p.nodeAt(n, start)()
	p.consumeToken()
	p.rejectNullable()
	return n
}

func (p *sourceParser) consumeNonNullableType() ast.SingleType {
	if !p.isToken(tokenTypeIdentifier) {
		p.emitError("Expected type, found %s", p.describeCurrent())
		return nil
	}
	if p.isPrimitiveStart() {
		if t := p.consumePrimitiveType(); t != nil {
			return t
		}
		return nil
	}

	v := p.currentToken.value
	switch {
	case stringTypes[v]:
		return p.consumeStringType()
	case bufferRelatedTypes[v]:
		n := &ast.BufferRelatedType{Name: v}
		p.consumeWord(n)
		return n
	case builtinTypes[v]:
		n := &ast.BuiltinType{Name: v}
		p.consumeWord(n)
		return n
	case v == "sequence" && p.isNextToken(tokenTypeLeftTri):
		n := &ast.SequenceType{}
		p.consumeGeneric(n, &n.ElementType)
		return n
	case v == "FrozenArray" && p.isNextToken(tokenTypeLeftTri):
		n := &ast.FrozenArrayType{}
		p.consumeGeneric(n, &n.ElementType)
		return n
	case v == "ObservableArray" && p.isNextToken(tokenTypeLeftTri):
		n := &ast.ObservableArrayType{}
		p.consumeGeneric(n, &n.ElementType)
		return n
	case v == "record" && p.isNextToken(tokenTypeLeftTri):
		return p.consumeRecordType()
	}

	// Any other name refers to a user-defined type.
	return p.consumeIdentifier()
}

// consumeWord consumes a single-token node.
func (p *sourceParser) consumeWord(n ast.Node) {
	defer p.node(n)()
	p.consumeToken()
}

// consumeGeneric consumes "Name<T>" into n, storing T in elem.
func (p *sourceParser) consumeGeneric(n ast.Node, elem *ast.Type) {
	defer p.node(n)()

	p.consumeToken()
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return
	}
	if *elem = p.consumeTypeArgument(); *elem == nil {
		return
	}
	p.consume(tokenTypeRightTri)
}

// consumeRecordType consumes "record<K, V>" where K is a string type.
func (p *sourceParser) consumeRecordType() *ast.RecordType {
	n := &ast.RecordType{}
	defer p.node(n)()

	p.consumeKeyword("record")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if p.isToken(tokenTypeIdentifier) && stringTypes[p.currentToken.value] {
		n.KeyType = p.consumeStringType()
	} else {
		p.emitError("Record keys must be ByteString, DOMString or USVString, found %s", p.describeCurrent())
		if p.consumeTypeArgument() == nil {
			return n
		}
	}
	if _, ok := p.consume(tokenTypeComma); !ok {
		return n
	}
	if n.ValueType = p.consumeTypeArgument(); n.ValueType == nil {
		return n
	}
	p.consume(tokenTypeRightTri)
	return n
}

func (p *sourceParser) consumeStringType() *ast.StringType {
	n := &ast.StringType{Name: p.currentToken.value}
	p.consumeWord(n)
	return n
}

// consumePrimitiveType consumes a numeric, boolean, byte, octet or bigint type.
func (p *sourceParser) consumePrimitiveType() ast.PrimitiveType {
	v := p.currentToken.value
	switch {
	case scalarTypes[v]:
		n := &ast.ScalarType{Name: v}
		p.consumeWord(n)
		return n
	case v == "unrestricted" || v == "float" || v == "double":
		return p.consumeFloatType()
	}
	return p.consumeIntegerType()
}

// consumeIntegerType consumes "[unsigned] short | long | long long".
func (p *sourceParser) consumeIntegerType() *ast.IntegerType {
	n := &ast.IntegerType{}
	defer p.node(n)()

	n.Unsigned = p.tryConsumeKeyword("unsigned")
	p.rejectDuplicateModifier("unsigned")
	switch {
	case p.tryConsumeKeyword("short"):
		n.Name = "short"
	case p.tryConsumeKeyword("long"):
		n.Name = "long"
		if p.isKeyword("long") && !p.isLongName() {
			p.consumeToken()
			n.Name = "long long"
		}
	default:
		p.emitError("Expected short or long, found %s", p.describeCurrent())
		return n
	}
	p.rejectTrailingModifier()
	return n
}

// consumeFloatType consumes "[unrestricted] float | double".
func (p *sourceParser) consumeFloatType() *ast.FloatType {
	n := &ast.FloatType{}
	defer p.node(n)()

	n.Unrestricted = p.tryConsumeKeyword("unrestricted")
	p.rejectDuplicateModifier("unrestricted")
	switch {
	case p.tryConsumeKeyword("float"):
		n.Name = "float"
	case p.tryConsumeKeyword("double"):
		n.Name = "double"
	default:
		p.emitError("Expected float or double, found %s", p.describeCurrent())
		return n
	}
	p.rejectTrailingModifier()
	return n
}

func (p *sourceParser) rejectDuplicateModifier(modifier string) {
	for p.isKeyword(modifier) {
		p.emitError("Duplicate %s modifier", modifier)
		p.consumeToken()
	}
}

// isLongName reports whether the current "long", following a long type, is
// the name declared with that type rather than the second word of "long long".
// Outside a union a closing parenthesis ends an argument.
func (p *sourceParser) isLongName() bool {
	if p.isNextToken(tokenTypeSemicolon, tokenTypeComma, tokenTypeEquals) {
		return true
	}
	return p.unionDepth == 0 && p.isNextToken(tokenTypeRightParen)
}

// rejectTrailingModifier reports a numeric modifier placed after the type
// it modifies. A modifier word followed by ';' or ')' is a name instead.
func (p *sourceParser) rejectTrailingModifier() {
	for p.isKeyword("unsigned") || p.isKeyword("unrestricted") {
		if !p.isNextToken(tokenTypeIdentifier) {
			return
		}
		p.emitError("Modifier %s must precede the type", p.currentToken.value)
		p.consumeToken()
	}
}

// consumeConstType consumes a primitive type or a type name.
func (p *sourceParser) consumeConstType() ast.ConstType {
	if p.isPrimitiveStart() {
		if t := p.consumePrimitiveType(); t != nil {
			return t
		}
		return nil
	}
	if id := p.consumeIdentifier(); id != nil {
		return id
	}
	return nil
}
