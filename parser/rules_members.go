// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"strings"

	"github.com/dennwc/webidl/v2/ast"
)

// memberKeywords start a member; member recovery stops before them.
var memberKeywords = []string{
	"const", "attribute", "readonly", "inherit", "static", "stringifier",
	"getter", "setter", "deleter", "iterable", "async", "maplike", "setlike",
	"constructor", "required",
}

func (p *sourceParser) isMemberKeyword() bool {
	for _, kw := range memberKeywords {
		if p.isKeyword(kw) {
			return true
		}
	}
	return false
}

// recoverMember skips to the next member, past a ';' or up to the closing
// brace or a member keyword.
func (p *sourceParser) recoverMember() {
	p.skipUntil(func(depth int) bool {
		return depth == 0 &&
			(p.isToken(tokenTypeSemicolon, tokenTypeRightBrace) || p.isMemberKeyword())
	})
	p.tryConsume(tokenTypeSemicolon)
}

// consumeMember consumes a member of an interface-like container with its
// extended attributes. The returned start token begins the member; the
// member itself is nil when nothing could be parsed.
func (p *sourceParser) consumeMember() (commentedLexeme, *ast.ExtendedAttributeList, ast.Node) {
	before := p.errorCount
	start := p.startConstruct()
	attrs := p.tryConsumeExtendedAttributeList()

	var m ast.Node
	if p.isToken(tokenTypeIdentifier, tokenTypeLeftParen) {
		m = p.consumeMemberBody()
	} else {
		p.emitError("Expected member, found %s", p.describeCurrent())
	}

	if p.errorCount > before && !p.previousIs(tokenTypeSemicolon) {
		p.recoverMember()
	}
	return start, attrs, m
}

// decorateMember sets the span and comments of a member wrapper, which is
// built after its contents.
func (p *sourceParser) decorateMember(n ast.Node, start commentedLexeme) {
	b := n.NodeBase()
	b.Start = int(start.position + p.startIndex)
	b.Comments = append(b.Comments, start.comments...)
	p.decorateEndRune(n, p.previousToken)
}

// emitNotAllowed reports a member parsed in a container that does not
// permit it. The error spans the member, which is dropped; errors found
// inside the member move to the container.
func (p *sourceParser) emitNotAllowed(m ast.Node, container string) {
	e := &ast.ErrorNode{
		ErrKind: ast.StructuralError,
		Message: describeKind(m.Kind()) + " is not allowed in " + container,
	}
	e.Start = m.NodeBase().Start
	e.End = m.NodeBase().End
	p.attachError(e)

	b := p.currentNode().NodeBase()
	b.Errors = append(b.Errors, ast.Errors(m)...)
}

func describeKind(kind string) string {
	kind = strings.ReplaceAll(kind, "_", " ")
	return strings.ToUpper(kind[:1]) + kind[1:]
}

// consumeMemberBody dispatches on the leading keyword of a member.
func (p *sourceParser) consumeMemberBody() ast.Node {
	switch {
	case p.isKeyword("const"):
		return p.consumeConst()

	case p.isKeyword("constructor") && p.isNextToken(tokenTypeLeftParen):
		return p.consumeConstructor()

	case p.isKeyword("stringifier"):
		return p.consumeStringifier()

	case p.isKeyword("static"):
		return p.consumeStatic()

	case p.isKeyword("iterable") && p.isNextToken(tokenTypeLeftTri):
		return p.consumeIterable()

	case p.isKeyword("async") && p.isNextKeyword("iterable"):
		return p.consumeAsyncIterable()

	case p.isKeyword("maplike") && p.isNextToken(tokenTypeLeftTri),
		p.isKeyword("readonly") && p.isNextKeyword("maplike"):
		return p.consumeMaplike()

	case p.isKeyword("setlike") && p.isNextToken(tokenTypeLeftTri),
		p.isKeyword("readonly") && p.isNextKeyword("setlike"):
		return p.consumeSetlike()

	case p.isAttributeStart():
		return p.consumeAttribute()

	case p.isKeyword("getter"), p.isKeyword("setter"), p.isKeyword("deleter"):
		return p.consumeSpecialOperation()
	}
	return p.consumeRegularOperation()
}

func (p *sourceParser) isAttributeStart() bool {
	return p.isKeyword("inherit") || p.isKeyword("readonly") || p.isKeyword("attribute")
}

// consumeConst consumes "const Type NAME = value;".
func (p *sourceParser) consumeConst() *ast.Const {
	n := &ast.Const{}
	defer p.node(n)()

	p.consumeKeyword("const")
	if n.Type = p.consumeConstType(); n.Type == nil {
		return n
	}
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeEquals); !ok {
		return n
	}
	if n.Value = p.consumeConstValue(); n.Value == nil {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeConstructor consumes "constructor(args);".
func (p *sourceParser) consumeConstructor() *ast.Constructor {
	n := &ast.Constructor{}
	defer p.node(n)()

	p.consumeKeyword("constructor")
	n.Arguments = p.consumeArgumentList()
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeStringifier consumes "stringifier;" or a stringifier attribute or
// operation.
func (p *sourceParser) consumeStringifier() *ast.Stringifier {
	n := &ast.Stringifier{}
	defer p.node(n)()

	p.consumeKeyword("stringifier")
	switch {
	case p.isToken(tokenTypeSemicolon):
		p.consumeToken()
	case p.isAttributeStart():
		if p.isKeyword("inherit") {
			p.emitError("Stringifier attributes cannot be inherited")
		}
		n.Attribute = p.consumeAttribute()
	default:
		n.Operation = p.consumeRegularOperation()
	}
	return n
}

// consumeStatic consumes a static attribute or operation.
func (p *sourceParser) consumeStatic() *ast.StaticMember {
	n := &ast.StaticMember{}
	defer p.node(n)()

	p.consumeKeyword("static")
	if p.isAttributeStart() {
		if p.isKeyword("inherit") {
			p.emitError("Static attributes cannot be inherited")
		}
		n.Member = p.consumeAttribute()
	} else {
		n.Member = p.consumeRegularOperation()
	}
	return n
}

// consumeIterable consumes "iterable<V>;" or "iterable<K, V>;".
func (p *sourceParser) consumeIterable() *ast.Iterable {
	n := &ast.Iterable{}
	defer p.node(n)()

	p.consumeKeyword("iterable")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if n.Type = p.consumeTypeArgument(); n.Type == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeComma); ok {
		if n.ValueType = p.consumeTypeArgument(); n.ValueType == nil {
			return n
		}
	}
	if _, ok := p.consume(tokenTypeRightTri); !ok {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeAsyncIterable consumes "async iterable<K, V>(args);" where the
// value type and the arguments are optional.
func (p *sourceParser) consumeAsyncIterable() *ast.AsyncIterable {
	n := &ast.AsyncIterable{}
	defer p.node(n)()

	p.consumeKeyword("async")
	p.consumeKeyword("iterable")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if n.Type = p.consumeTypeArgument(); n.Type == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeComma); ok {
		if n.ValueType = p.consumeTypeArgument(); n.ValueType == nil {
			return n
		}
	}
	if _, ok := p.consume(tokenTypeRightTri); !ok {
		return n
	}
	if p.isToken(tokenTypeLeftParen) {
		n.Arguments = p.consumeArgumentList()
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeMaplike consumes "[readonly] maplike<K, V>;".
func (p *sourceParser) consumeMaplike() *ast.Maplike {
	n := &ast.Maplike{}
	defer p.node(n)()

	n.Readonly = p.tryConsumeKeyword("readonly")
	p.consumeKeyword("maplike")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if n.KeyType = p.consumeTypeArgument(); n.KeyType == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeComma); !ok {
		return n
	}
	if n.ValueType = p.consumeTypeArgument(); n.ValueType == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeRightTri); !ok {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeSetlike consumes "[readonly] setlike<V>;".
func (p *sourceParser) consumeSetlike() *ast.Setlike {
	n := &ast.Setlike{}
	defer p.node(n)()

	n.Readonly = p.tryConsumeKeyword("readonly")
	p.consumeKeyword("setlike")
	if _, ok := p.consume(tokenTypeLeftTri); !ok {
		return n
	}
	if n.ValueType = p.consumeTypeArgument(); n.ValueType == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeRightTri); !ok {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeAttribute consumes "[inherit | readonly] attribute Type name;".
func (p *sourceParser) consumeAttribute() *ast.Attribute {
	n := &ast.Attribute{}
	defer p.node(n)()

	n.Inherit = p.tryConsumeKeyword("inherit")
	if p.isKeyword("readonly") {
		if n.Inherit {
			p.emitError("Inherited attributes cannot be readonly")
		}
		p.consumeToken()
		n.Readonly = true
	}
	if !p.consumeKeyword("attribute") {
		return n
	}
	if n.Type = p.consumeTypeWithExtendedAttributes(); n.Type.Type == nil {
		return n
	}
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeSpecialOperation consumes a getter, setter or deleter.
func (p *sourceParser) consumeSpecialOperation() *ast.SpecialOperation {
	n := &ast.SpecialOperation{Special: p.currentToken.value}
	defer p.node(n)()

	p.consumeToken()
	n.Operation = p.consumeRegularOperation()
	return n
}

// consumeRegularOperation consumes "ReturnType [name](args);".
func (p *sourceParser) consumeRegularOperation() *ast.RegularOperation {
	n := &ast.RegularOperation{}
	defer p.node(n)()

	if n.ReturnType = p.consumeType(); n.ReturnType == nil {
		return n
	}
	if name, ok := p.tryConsumeIdentifier(); ok {
		n.Name = name
	}
	before := p.errorCount
	n.Arguments = p.consumeArgumentList()
	if p.errorCount > before {
		p.tryConsume(tokenTypeSemicolon)
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeDictionaryMember consumes "[required] Type name [= default];".
func (p *sourceParser) consumeDictionaryMember() *ast.DictionaryMember {
	before := p.errorCount
	start := p.startConstruct()
	n := &ast.DictionaryMember{Attributes: p.tryConsumeExtendedAttributeList()}
	finish := p.nodeAt(n, start)
	p.consumeDictionaryMemberRest(n)
	finish()

	if p.errorCount > before && !p.previousIs(tokenTypeSemicolon) {
		p.recoverMember()
	}
	return n
}

func (p *sourceParser) consumeDictionaryMemberRest(n *ast.DictionaryMember) {
	if n.Required = p.tryConsumeKeyword("required"); n.Required {
		n.Type = p.consumeTypeArgument()
	} else {
		n.Type = p.consumeType()
	}
	if n.Type == nil {
		return
	}
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return
	}
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		if n.Default = p.consumeDefaultValue(); n.Default == nil {
			return
		}
	}
	p.consume(tokenTypeSemicolon)
}
