// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dennwc/webidl/v2/ast"
)

// Options customize a parse.
type Options struct {
	// Logger receives debug records for every definition and syntax error.
	// Nil disables logging.
	Logger *slog.Logger

	// Offset is added to every position recorded in the tree, so that a
	// fragment cut from a larger document keeps the document's offsets.
	Offset int
}

// Parse parses the given WebIDL source into a parse tree.
func Parse(input string) *ast.File {
	return ParseOptions(input, Options{})
}

// ParseOptions is like Parse, with options.
func ParseOptions(input string, opts Options) *ast.File {
	return newParser(input, opts).consumeTopLevel(input)
}

// ParseType parses a single type, optionally preceded by an extended
// attribute list. The returned type is nil if none could be parsed.
func ParseType(input string) (ast.Type, []*ast.ErrorNode) {
	p := newParser(input, Options{})
	holder := &ast.File{}
	finish := p.node(holder)
	p.consumeToken()

	t := p.consumeTypeArgument()
	p.expectEOF("type")
	finish()

	if t == nil {
		return nil, ast.Errors(holder)
	}
	return t, mergeErrors(ast.Errors(holder), ast.Errors(t))
}

// ParseExtendedAttributeList parses a bracketed extended attribute list.
func ParseExtendedAttributeList(input string) (*ast.ExtendedAttributeList, []*ast.ErrorNode) {
	p := newParser(input, Options{})
	holder := &ast.File{}
	finish := p.node(holder)
	p.consumeToken()

	list := p.consumeExtendedAttributeList()
	p.expectEOF("extended attribute list")
	finish()

	return list, mergeErrors(ast.Errors(holder), ast.Errors(list))
}

func newParser(input string, opts Options) *sourceParser {
	config := parserConfig{
		ignoredTokenTypes: map[tokenType]struct{}{
			tokenTypeWhitespace: {},
			tokenTypeComment:    {},
		},
	}
	return buildParser(lex(input), config, bytePosition(opts.Offset), opts.Logger)
}

// expectEOF reports any input left after a fragment.
func (p *sourceParser) expectEOF(what string) {
	if !p.isToken(tokenTypeEOF) {
		p.emitError("Unexpected %s after %s", p.describeCurrent(), what)
	}
	p.flushLexicalErrors()
}

func mergeErrors(a, b []*ast.ErrorNode) []*ast.ErrorNode {
	out := append(a, b...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// consumeTopLevel attempts to consume the top-level definitions of a WebIDL file.
func (p *sourceParser) consumeTopLevel(input string) *ast.File {
	n := &ast.File{}
	finish := p.node(n)

	// Start at the first token.
	p.consumeToken()

	for !p.isToken(tokenTypeEOF) {
		// Input skipped between definitions belongs to the file.
		p.flushLexicalErrors()
		before := p.errorCount
		def := p.consumeDefinition()
		n.Definitions = append(n.Definitions, def)
		p.log(slog.LevelDebug, "definition",
			slog.String("kind", def.Kind()),
			slog.Int("start", def.NodeBase().Start),
			slog.Int("end", def.NodeBase().End))

		if p.errorCount > before && !p.previousIs(tokenTypeSemicolon) {
			if skipped := p.recoverDefinition(); skipped > 0 {
				p.log(slog.LevelDebug, "skipped tokens", slog.Int("count", skipped))
			}
		}
	}
	p.flushLexicalErrors()
	finish()

	n.Start = int(p.startIndex)
	n.End = int(p.startIndex) + len(input)
	n.Tokens = p.tokens
	n.SetLinesForContent(input, int(p.startIndex))

	p.log(slog.LevelDebug, "parsed",
		slog.Int("definitions", len(n.Definitions)),
		slog.Int("errors", p.errorCount))
	return n
}

// isDefinitionStart reports whether the current token can begin a definition.
func (p *sourceParser) isDefinitionStart() bool {
	if p.isToken(tokenTypeLeftBracket) {
		return true
	}
	for _, kw := range definitionKeywords {
		if p.isKeyword(kw) {
			return true
		}
	}
	return p.isToken(tokenTypeIdentifier) &&
		(p.isNextKeyword("includes") || p.isNextKeyword("implements"))
}

var definitionKeywords = []string{
	"callback", "interface", "partial", "namespace", "dictionary", "enum", "typedef",
}

// recoverDefinition skips to the next definition, past a ';' or up to a
// token that starts one.
func (p *sourceParser) recoverDefinition() int {
	skipped := p.skipUntil(func(depth int) bool {
		return depth == 0 && (p.isToken(tokenTypeSemicolon) || p.isDefinitionStart())
	})
	if _, ok := p.tryConsume(tokenTypeSemicolon); ok {
		skipped++
	}
	return skipped
}

// consumeDefinition consumes one definition with its extended attributes.
func (p *sourceParser) consumeDefinition() ast.Definition {
	start := p.startConstruct()
	attrs := p.tryConsumeExtendedAttributeList()

	switch {
	case p.isKeyword("callback"):
		if p.isNextKeyword("interface") {
			return p.consumeCallbackInterface(start, attrs)
		}
		return p.consumeCallbackFunction(start, attrs)

	case p.isKeyword("interface"):
		if p.isNextKeyword("mixin") {
			return p.consumeMixin(start, attrs)
		}
		return p.consumeInterface(start, attrs)

	case p.isKeyword("partial"):
		p.consumeToken()
		switch {
		case p.isKeyword("interface"):
			if p.isNextKeyword("mixin") {
				return p.consumePartialMixin(start, attrs)
			}
			return p.consumePartialInterface(start, attrs)
		case p.isKeyword("namespace"):
			return p.consumePartialNamespace(start, attrs)
		case p.isKeyword("dictionary"):
			return p.consumePartialDictionary(start, attrs)
		}
		return p.consumeUnexpected(start, "Expected interface, namespace or dictionary after partial, found %s", p.describeCurrent())

	case p.isKeyword("namespace"):
		return p.consumeNamespace(start, attrs)

	case p.isKeyword("dictionary"):
		return p.consumeDictionary(start, attrs)

	case p.isKeyword("enum"):
		return p.consumeEnum(start, attrs)

	case p.isKeyword("typedef"):
		return p.consumeTypedef(start, attrs)

	case p.isToken(tokenTypeIdentifier) && p.isNextKeyword("includes"):
		return p.consumeIncludes(start, attrs)

	case p.isToken(tokenTypeIdentifier) && p.isNextKeyword("implements"):
		return p.consumeImplements(start, attrs)
	}

	return p.consumeUnexpected(start, "Unexpected %s at top level", p.describeCurrent())
}

// consumeUnexpected turns input that starts no definition into an error
// definition spanning the skipped tokens.
func (p *sourceParser) consumeUnexpected(start commentedLexeme, format string, args ...interface{}) *ast.ErrorNode {
	n := &ast.ErrorNode{ErrKind: ast.StructuralError, Message: fmt.Sprintf(format, args...)}
	n.Start = int(start.position + p.startIndex)
	n.Comments = start.comments

	p.nodes.push(n)
	if p.currentToken.position == start.position {
		p.consumeToken()
	}
	p.recoverDefinition()
	p.nodes.pop()

	p.decorateEndRune(n, p.previousToken)
	p.errorCount++
	p.log(slog.LevelDebug, "syntax error",
		slog.String("kind", n.ErrKind.String()),
		slog.Int("offset", n.Start),
		slog.String("message", n.Message))
	return n
}

// consumeBraced consumes "{ member* } ;". Members are consumed by member
// until the closing brace. The body node, if any, spans the braces; a missing
// final ';' is reported on it, or on the current node when body is nil.
func (p *sourceParser) consumeBraced(body ast.Node, what string, member func()) {
	target := body
	var finish func()
	if body != nil {
		finish = p.node(body)
	} else {
		target = p.currentNode()
	}
	closed := p.consumeBracedMembers(member)
	if finish != nil {
		finish()
	}
	if closed {
		p.consumeClosingSemicolon(target, what)
	}
}

func (p *sourceParser) consumeBracedMembers(member func()) bool {
	if _, ok := p.consume(tokenTypeLeftBrace); !ok {
		return false
	}
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF) {
		p.flushLexicalErrors()
		position := p.currentToken.position
		member()
		if p.currentToken.position == position && !p.isToken(tokenTypeRightBrace, tokenTypeEOF) {
			p.emitError("Unexpected %s", p.describeCurrent())
			p.consumeToken()
		}
	}
	_, ok := p.consume(tokenTypeRightBrace)
	return ok
}

// consumeClosingSemicolon consumes the ';' required after a closing brace.
func (p *sourceParser) consumeClosingSemicolon(target ast.Node, what string) {
	if _, ok := p.tryConsume(tokenTypeSemicolon); !ok {
		p.emitErrorOn(target, "Expected ';' after '}' closing %s, found %s", what, p.describeCurrent())
	}
}

// consumeCallbackInterface consumes "callback interface Name { ... };".
func (p *sourceParser) consumeCallbackInterface(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.CallbackInterface{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("callback")
	p.consumeKeyword("interface")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.rejectInheritance("callback interface")

	n.Body = &ast.CallbackInterfaceMembers{}
	p.consumeBraced(n.Body, "callback interface", func() {
		start, attrs, m := p.consumeMember()
		if m == nil {
			return
		}
		body, ok := m.(ast.InterfaceMemberBody)
		if !ok {
			p.emitNotAllowed(m, "callback interface")
			return
		}
		w := &ast.InterfaceMember{Attributes: attrs, Member: body}
		p.decorateMember(w, start)
		n.Body.Members = append(n.Body.Members, w)
	})
	return n
}

// consumeCallbackFunction consumes "callback Name = ReturnType (args);".
func (p *sourceParser) consumeCallbackFunction(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.CallbackFunction{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("callback")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeEquals); !ok {
		return n
	}
	if n.ReturnType = p.consumeType(); n.ReturnType == nil {
		return n
	}
	n.Arguments = p.consumeArgumentList()
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeInterface consumes "interface Name [: Super] { ... };".
func (p *sourceParser) consumeInterface(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Interface{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("interface")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Super = p.consumeIdentifier()
	}

	n.Body = &ast.InterfaceMembers{}
	p.consumeBraced(n.Body, "interface", func() {
		start, attrs, m := p.consumeMember()
		if m == nil {
			return
		}
		body, ok := m.(ast.InterfaceMemberBody)
		if !ok {
			p.emitNotAllowed(m, "interface")
			return
		}
		w := &ast.InterfaceMember{Attributes: attrs, Member: body}
		p.decorateMember(w, start)
		n.Body.Members = append(n.Body.Members, w)
	})
	return n
}

// consumeMixin consumes "interface mixin Name { ... };".
func (p *sourceParser) consumeMixin(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Mixin{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("interface")
	p.consumeKeyword("mixin")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.rejectInheritance("mixin")

	n.Body = p.consumeMixinMembers("mixin")
	return n
}

// consumePartialMixin consumes "partial interface mixin Name { ... };"
// after the partial keyword.
func (p *sourceParser) consumePartialMixin(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.PartialMixin{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("interface")
	p.consumeKeyword("mixin")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.rejectInheritance("partial mixin")

	n.Body = p.consumeMixinMembers("partial mixin")
	return n
}

func (p *sourceParser) consumeMixinMembers(what string) *ast.MixinMembers {
	body := &ast.MixinMembers{}
	p.consumeBraced(body, what, func() {
		start, attrs, m := p.consumeMember()
		if m == nil {
			return
		}
		mb, ok := m.(ast.MixinMemberBody)
		if !ok {
			p.emitNotAllowed(m, what)
			return
		}
		w := &ast.MixinMember{Attributes: attrs, Member: mb}
		p.decorateMember(w, start)
		body.Members = append(body.Members, w)
	})
	return body
}

// consumePartialInterface consumes "partial interface Name { ... };" after
// the partial keyword.
func (p *sourceParser) consumePartialInterface(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.PartialInterface{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("interface")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.rejectInheritance("partial interface")

	p.consumeBraced(nil, "partial interface", func() {
		start, attrs, m := p.consumeMember()
		if m == nil {
			return
		}
		body, ok := m.(ast.PartialInterfaceMemberBody)
		if !ok {
			p.emitNotAllowed(m, "partial interface")
			return
		}
		w := &ast.PartialInterfaceMember{Attributes: attrs, Member: body}
		p.decorateMember(w, start)
		n.Members = append(n.Members, w)
	})
	return n
}

// consumeNamespace consumes "namespace Name { ... };".
func (p *sourceParser) consumeNamespace(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Namespace{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("namespace")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	n.Members = p.consumeNamespaceMembers("namespace")
	return n
}

// consumePartialNamespace consumes "partial namespace Name { ... };" after
// the partial keyword.
func (p *sourceParser) consumePartialNamespace(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.PartialNamespace{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("namespace")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	n.Members = p.consumeNamespaceMembers("partial namespace")
	return n
}

func (p *sourceParser) consumeNamespaceMembers(what string) []*ast.NamespaceMember {
	var members []*ast.NamespaceMember
	p.consumeBraced(nil, what, func() {
		start, attrs, m := p.consumeMember()
		if m == nil {
			return
		}
		body, ok := m.(ast.NamespaceMemberBody)
		if !ok {
			p.emitNotAllowed(m, what)
			return
		}
		w := &ast.NamespaceMember{Attributes: attrs, Member: body}
		p.decorateMember(w, start)
		members = append(members, w)
	})
	return members
}

// consumeDictionary consumes "dictionary Name [: Super] { ... };".
func (p *sourceParser) consumeDictionary(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Dictionary{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("dictionary")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Super = p.consumeIdentifier()
	}
	n.Body = p.consumeDictionaryMembers("dictionary")
	return n
}

// consumePartialDictionary consumes "partial dictionary Name { ... };" after
// the partial keyword.
func (p *sourceParser) consumePartialDictionary(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.PartialDictionary{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("dictionary")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.rejectInheritance("partial dictionary")
	n.Body = p.consumeDictionaryMembers("partial dictionary")
	return n
}

func (p *sourceParser) consumeDictionaryMembers(what string) *ast.DictionaryMembers {
	body := &ast.DictionaryMembers{}
	p.consumeBraced(body, what, func() {
		body.Members = append(body.Members, p.consumeDictionaryMember())
	})
	return body
}

// consumeEnum consumes `enum Name { "a", "b" };`. A trailing comma is allowed.
func (p *sourceParser) consumeEnum(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Enum{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("enum")
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	if _, ok := p.consume(tokenTypeLeftBrace); !ok {
		return n
	}
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF) {
		if !p.isToken(tokenTypeString) {
			p.emitError("Expected enum value, found %s", p.describeCurrent())
			p.skipUntil(func(depth int) bool {
				return depth == 0 && p.isToken(tokenTypeRightBrace, tokenTypeSemicolon)
			})
			break
		}
		n.Values = append(n.Values, p.consumeString())
		if _, ok := p.tryConsume(tokenTypeComma); !ok {
			break
		}
	}
	if len(n.Values) == 0 && p.isToken(tokenTypeRightBrace) {
		p.emitError("Enum must have at least one value")
	}
	if _, ok := p.consume(tokenTypeRightBrace); !ok {
		return n
	}
	p.consumeClosingSemicolon(n, "enum")
	return n
}

// consumeTypedef consumes "typedef Type Name;".
func (p *sourceParser) consumeTypedef(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.Typedef{Attributes: attrs}
	defer p.nodeAt(n, start)()

	p.consumeKeyword("typedef")
	if n.Type = p.consumeTypeWithExtendedAttributes(); n.Type.Type == nil {
		return n
	}
	if n.Name = p.consumeIdentifier(); n.Name == nil {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeIncludes consumes "Target includes Mixin;".
func (p *sourceParser) consumeIncludes(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.IncludesStatement{Attributes: attrs}
	defer p.nodeAt(n, start)()

	n.Target = p.consumeIdentifier()
	p.consumeKeyword("includes")
	if n.Mixin = p.consumeIdentifier(); n.Mixin == nil {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeImplements consumes the legacy "Target implements Source;".
func (p *sourceParser) consumeImplements(start commentedLexeme, attrs *ast.ExtendedAttributeList) ast.Definition {
	n := &ast.ImplementsStatement{Attributes: attrs}
	defer p.nodeAt(n, start)()

	n.Target = p.consumeIdentifier()
	p.consumeKeyword("implements")
	if n.Source = p.consumeIdentifier(); n.Source == nil {
		return n
	}
	p.consume(tokenTypeSemicolon)
	return n
}

// rejectInheritance reports an inheritance clause on a definition that
// cannot have one, and skips it.
func (p *sourceParser) rejectInheritance(what string) {
	if !p.isToken(tokenTypeColon) {
		return
	}
	p.emitError("%s cannot inherit", strings.ToUpper(what[:1])+what[1:])
	p.consumeToken()
	p.tryConsumeIdentifier()
}
