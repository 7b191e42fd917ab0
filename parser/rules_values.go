// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/dennwc/webidl/v2/ast"
)

// tryConsumeExtendedAttributeList consumes an extended attribute list if
// one starts at the current token.
func (p *sourceParser) tryConsumeExtendedAttributeList() *ast.ExtendedAttributeList {
	if !p.isToken(tokenTypeLeftBracket) {
		return nil
	}
	return p.consumeExtendedAttributeList()
}

// consumeExtendedAttributeList consumes "[Attr, Attr...]". At least one
// attribute is required.
func (p *sourceParser) consumeExtendedAttributeList() *ast.ExtendedAttributeList {
	n := &ast.ExtendedAttributeList{}
	defer p.node(n)()

	if _, ok := p.consume(tokenTypeLeftBracket); !ok {
		return n
	}
	if p.isToken(tokenTypeRightBracket) {
		p.emitError("Extended attribute list cannot be empty")
		p.consumeToken()
		return n
	}

	for {
		attr := p.consumeExtendedAttribute()
		if attr == nil {
			p.recoverExtendedAttributes()
			return n
		}
		n.Attributes = append(n.Attributes, attr)
		if _, ok := p.tryConsume(tokenTypeComma); !ok {
			break
		}
	}
	if _, ok := p.consume(tokenTypeRightBracket); !ok {
		p.recoverExtendedAttributes()
	}
	return n
}

// recoverExtendedAttributes skips past the closing ']', stopping early at a
// token that cannot be part of an extended attribute list.
func (p *sourceParser) recoverExtendedAttributes() {
	p.skipUntil(func(depth int) bool {
		return depth == 0 && p.isToken(tokenTypeRightBracket,
			tokenTypeSemicolon, tokenTypeLeftBrace, tokenTypeRightBrace)
	})
	p.tryConsume(tokenTypeRightBracket)
}

// consumeExtendedAttribute consumes one attribute. The form is chosen by the
// tokens after the name:
//
//	Name
//	Name(args)
//	Name=Value
//	Name=(A, B)
//	Name=Value(args)
//	Name=*
func (p *sourceParser) consumeExtendedAttribute() ast.ExtendedAttribute {
	start := p.startConstruct()
	name, ok := p.tryConsumeIdentifier()
	if !ok {
		p.emitError("Expected extended attribute, found %s", p.describeCurrent())
		return nil
	}

	if p.isToken(tokenTypeLeftParen) {
		n := &ast.ExtendedAttributeArgList{Name: name}
		defer p.nodeAt(n, start)()
		n.Arguments = p.consumeArgumentList()
		return n
	}
	if _, ok := p.tryConsume(tokenTypeEquals); !ok {
		n := &ast.ExtendedAttributeNoArgs{Name: name}
		p.decorateStartRuneAndComments(n, start)
		p.decorateEndRune(n, p.previousToken)
		return n
	}

	switch {
	case p.isToken(tokenTypeAsterisk):
		n := &ast.ExtendedAttributeWildcard{Name: name}
		defer p.nodeAt(n, start)()
		p.consumeToken()
		return n

	case p.isToken(tokenTypeLeftParen):
		n := &ast.ExtendedAttributeIdentList{Name: name}
		defer p.nodeAt(n, start)()
		p.consumeToken()
		for {
			id := p.consumeIdentifier()
			if id == nil {
				return n
			}
			n.Values = append(n.Values, id)
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}
		p.consume(tokenTypeRightParen)
		return n
	}

	value, ok := p.tryConsumeIdentifier()
	if ok && p.isToken(tokenTypeLeftParen) {
		n := &ast.ExtendedAttributeNamedArgList{Name: name, Identifier: value}
		defer p.nodeAt(n, start)()
		n.Arguments = p.consumeArgumentList()
		return n
	}

	n := &ast.ExtendedAttributeIdent{Name: name, Value: value}
	defer p.nodeAt(n, start)()
	if !ok {
		p.emitError("Expected identifier, identifier list or '*' after '=', found %s", p.describeCurrent())
	}
	return n
}

// consumeArgumentList consumes "(arg, arg...)".
func (p *sourceParser) consumeArgumentList() *ast.ArgumentList {
	n := &ast.ArgumentList{}
	defer p.node(n)()
	unionDepth := p.unionDepth
	p.unionDepth = 0
	defer func() { p.unionDepth = unionDepth }()

	if _, ok := p.consume(tokenTypeLeftParen); !ok {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeRightParen); ok {
		return n
	}
	for {
		arg := p.consumeArgument()
		n.Arguments = append(n.Arguments, arg)
		if arg.Name == nil {
			return n
		}
		if _, ok := p.tryConsume(tokenTypeComma); !ok {
			break
		}
	}
	p.consume(tokenTypeRightParen)
	return n
}

// consumeArgument consumes
//
//	[ExtAttrs] optional [ExtAttrs] Type name [= default]
//	[ExtAttrs] Type [...] name
func (p *sourceParser) consumeArgument() *ast.Argument {
	start := p.startConstruct()
	n := &ast.Argument{Attributes: p.tryConsumeExtendedAttributeList()}
	defer p.nodeAt(n, start)()

	if n.Optional = p.tryConsumeKeyword("optional"); n.Optional {
		n.Type = p.consumeTypeArgument()
	} else {
		n.Type = p.consumeType()
	}
	if n.Type == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeVariadic); ok {
		n.Variadic = true
		if n.Optional {
			p.emitError("Optional arguments cannot be variadic")
		}
	}
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		if !n.Optional {
			p.emitError("Only optional arguments can have a default value")
		}
		n.Default = p.consumeDefaultValue()
	}
	return n
}

// consumeConstValue consumes a boolean, integer, decimal or special float.
func (p *sourceParser) consumeConstValue() ast.ConstValue {
	switch {
	case p.isKeyword("true"), p.isKeyword("false"):
		n := &ast.BooleanLiteral{Value: p.currentToken.value == "true"}
		p.consumeWord(n)
		return n
	case p.isToken(tokenTypeInteger):
		n := &ast.Integer{Value: p.currentToken.value}
		p.consumeWord(n)
		return n
	case p.isToken(tokenTypeDecimal):
		n := &ast.Decimal{Value: p.currentToken.value}
		p.consumeWord(n)
		return n
	case p.isKeyword("Infinity"), p.isKeyword("-Infinity"), p.isKeyword("NaN"):
		n := &ast.FloatConstant{Value: p.currentToken.value}
		p.consumeWord(n)
		return n
	}
	p.emitError("Expected constant value, found %s", p.describeCurrent())
	return nil
}

// consumeDefaultValue consumes a constant value, a string, [], {}, null or
// undefined.
func (p *sourceParser) consumeDefaultValue() ast.DefaultValue {
	switch {
	case p.isToken(tokenTypeString):
		return p.consumeString()
	case p.isToken(tokenTypeLeftBracket):
		n := &ast.EmptySequence{}
		defer p.node(n)()
		p.consumeToken()
		p.consume(tokenTypeRightBracket)
		return n
	case p.isToken(tokenTypeLeftBrace):
		n := &ast.DefaultDictionary{}
		defer p.node(n)()
		p.consumeToken()
		p.consume(tokenTypeRightBrace)
		return n
	case p.isKeyword("null"):
		n := &ast.NullLiteral{}
		p.consumeWord(n)
		return n
	case p.isKeyword("undefined"):
		n := &ast.UndefinedLiteral{}
		p.consumeWord(n)
		return n
	}

	if v := p.consumeConstValue(); v != nil {
		return v
	}
	return nil
}

// consumeString consumes a string literal, dropping the quotes.
func (p *sourceParser) consumeString() *ast.String {
	v := p.currentToken.value
	n := &ast.String{Value: v[1 : len(v)-1]}
	p.consumeWord(n)
	return n
}
