// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser defines the parser and lexer for translating WebIDL
// (https://webidl.spec.whatwg.org/) into a syntax tree.
//
// Syntax errors never abort a parse: they are recorded as error nodes in the
// tree, attached to the smallest node that was being built when the error was
// found, and parsing resumes with the next construct. Use ast.Errors to
// collect them.
package parser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dennwc/webidl/v2/ast"
)

// tryConsumeIdentifier attempts to consume an expected identifier.
func (p *sourceParser) tryConsumeIdentifier() (*ast.Identifier, bool) {
	if !p.isToken(tokenTypeIdentifier) {
		return nil, false
	}

	n := &ast.Identifier{Name: p.currentToken.value}
	n.Start = int(p.currentToken.position + p.startIndex)
	p.consumeToken()
	p.decorateEndRune(n, p.previousToken)
	return n, true
}

// consumeIdentifier consumes an expected identifier token or adds an error node.
func (p *sourceParser) consumeIdentifier() *ast.Identifier {
	if identifier, ok := p.tryConsumeIdentifier(); ok {
		return identifier
	}

	p.emitError("Expected identifier, found %s", p.describeCurrent())
	return nil
}

// commentedLexeme is a lexeme with the comments and unrecognized input
// found before it.
type commentedLexeme struct {
	lexeme
	comments  []string
	lexErrors []lexeme
}

// sourceParser holds the state of the parser.
type sourceParser struct {
	startIndex    bytePosition    // The start index for position decoration on nodes.
	lex           *peekableLexer  // a reference to the lexer used for tokenization
	nodes         nodeStack       // the stack of the current nodes
	currentToken  commentedLexeme // the current token
	previousToken commentedLexeme // the previous token
	config        parserConfig    // Configuration for customizing the parser
	logger        *slog.Logger    // nil disables logging
	tokens        []ast.Token     // significant tokens consumed so far
	errorCount    int             // error nodes attached so far
	started       bool            // whether the first token has been read
	unionDepth    int             // unions being consumed
}

// parserConfig holds configuration for customizing the parser
type parserConfig struct {
	ignoredTokenTypes map[tokenType]struct{} // the token types ignored by the parser
}

// buildParser returns a new sourceParser instance.
func buildParser(lexer *lexer, config parserConfig, startIndex bytePosition, logger *slog.Logger) *sourceParser {
	l := peekableLex(lexer)
	newLexeme := func() commentedLexeme {
		return commentedLexeme{lexeme: lexeme{tokenTypeEOF, 0, ""}}
	}
	return &sourceParser{
		startIndex:    startIndex,
		lex:           l,
		currentToken:  newLexeme(),
		previousToken: newLexeme(),
		config:        config,
		logger:        logger,
	}
}

// log writes a record if the parser has a logger.
func (p *sourceParser) log(level slog.Level, msg string, args ...interface{}) {
	if p.logger == nil {
		return
	}
	p.logger.Log(context.Background(), level, msg, args...)
}

// createErrorNode creates a new error node spanning the current token and returns it.
func (p *sourceParser) createErrorNode(kind ast.ErrorKind, format string, args ...interface{}) *ast.ErrorNode {
	n := &ast.ErrorNode{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
	n.Start = int(p.currentToken.position + p.startIndex)
	n.End = int(p.currentToken.end() + p.startIndex)
	return n
}

// node decorates the given node with the current token's position as its start
// position, and pushes it onto the nodes stack. The returned function pops it and
// decorates it with the previous token's end position as its end position.
func (p *sourceParser) node(node ast.Node) func() {
	return p.nodeAt(node, p.currentToken)
}

// nodeAt is like node, but the node starts at the given token, which was
// consumed before the node was created.
func (p *sourceParser) nodeAt(node ast.Node, start commentedLexeme) func() {
	p.decorateStartRuneAndComments(node, start)
	p.nodes.push(node)
	return func() {
		if p.currentNode() != node {
			panic(fmt.Sprintf("Unbalanced node stack finishing %s. Token: %s", node.Kind(), p.currentToken.value))
		}

		p.decorateEndRune(node, p.previousToken)
		p.nodes.pop()
	}
}

// decorateStartRuneAndComments decorates the given node with the location of the given token as its
// starting rune, as well as any comments attached to the token.
func (p *sourceParser) decorateStartRuneAndComments(node ast.Node, token commentedLexeme) {
	b := node.NodeBase()
	b.Start = int(token.position + p.startIndex)
	b.Comments = append(b.Comments, token.comments...)
	if token.position == p.currentToken.position {
		// Comments go to the outermost node starting at a token.
		p.currentToken.comments = nil
	}
}

// startConstruct returns the current token as the start of a construct
// whose node is created later, after its leading extended attributes.
// The token's comments are reserved for that node.
func (p *sourceParser) startConstruct() commentedLexeme {
	start := p.currentToken
	p.currentToken.comments = nil
	return start
}

// decorateEndRune decorates the given node with the end of the given token as its
// ending position. A node that consumed no tokens ends where it starts.
func (p *sourceParser) decorateEndRune(node ast.Node, token commentedLexeme) {
	b := node.NodeBase()
	b.End = int(token.end() + p.startIndex)
	if b.End < b.Start {
		b.End = b.Start
	}
}

// currentNode returns the node at the top of the stack.
func (p *sourceParser) currentNode() ast.Node {
	return p.nodes.topValue()
}

// consumeToken advances the lexer forward, returning the next token.
// Lexical errors met on the way are attached to the current node.
func (p *sourceParser) consumeToken() commentedLexeme {
	if p.started && p.currentToken.kind == tokenTypeEOF {
		return p.currentToken
	}
	p.started = true
	p.flushLexicalErrors()

	if p.currentToken.kind != tokenTypeEOF {
		p.tokens = append(p.tokens, ast.Token{
			Value: p.currentToken.value,
			Start: int(p.currentToken.position + p.startIndex),
			End:   int(p.currentToken.end() + p.startIndex),
		})
	}

	var (
		comments  []string
		lexErrors []lexeme
	)
	for {
		token := p.lex.nextToken()

		switch token.kind {
		case tokenTypeComment:
			comments = append(comments, token.value)
			continue
		case tokenTypeError:
			lexErrors = append(lexErrors, token)
			continue
		}

		if _, ok := p.config.ignoredTokenTypes[token.kind]; !ok {
			p.previousToken = p.currentToken
			p.currentToken = commentedLexeme{token, comments, lexErrors}
			return p.currentToken
		}
	}
}

// flushLexicalErrors attaches the unrecognized input found before the
// current token to the node that consumes it.
func (p *sourceParser) flushLexicalErrors() {
	for _, token := range p.currentToken.lexErrors {
		p.emitLexicalError(token)
	}
	p.currentToken.lexErrors = nil
}

// emitLexicalError records an unrecognized span of input on the current node.
func (p *sourceParser) emitLexicalError(token lexeme) {
	errorNode := &ast.ErrorNode{
		ErrKind: ast.LexicalError,
		Message: lexErrorMessage(token.value),
	}
	errorNode.Start = int(token.position + p.startIndex)
	errorNode.End = int(token.end() + p.startIndex)
	p.attachError(errorNode)
}

// isToken returns true if the current token matches one of the types given.
func (p *sourceParser) isToken(types ...tokenType) bool {
	for _, kind := range types {
		if p.currentToken.kind == kind {
			return true
		}
	}

	return false
}

// nextToken returns the next significant token found, without advancing the
// parser. Used for lookahead.
func (p *sourceParser) nextToken() lexeme {
	for counter := 1; ; counter++ {
		token := p.lex.peekToken(counter)
		if token.kind == tokenTypeComment || token.kind == tokenTypeError {
			continue
		}
		if _, ok := p.config.ignoredTokenTypes[token.kind]; !ok {
			return token
		}
	}
}

// previousIs reports whether the last consumed token has the given type.
func (p *sourceParser) previousIs(kind tokenType) bool {
	return p.previousToken.kind == kind
}

// isNextToken returns true if the *next* token matches one of the types given.
func (p *sourceParser) isNextToken(types ...tokenType) bool {
	token := p.nextToken()

	for _, kind := range types {
		if token.kind == kind {
			return true
		}
	}

	return false
}

// isKeyword returns true if the current token is the keyword given.
func (p *sourceParser) isKeyword(keyword string) bool {
	if !keywords[keyword] {
		panic(fmt.Sprintf("%q is not a WebIDL keyword", keyword))
	}
	return p.currentToken.isKeyword() && p.currentToken.value == keyword
}

// isNextKeyword returns true if the next token is the keyword given.
func (p *sourceParser) isNextKeyword(keyword string) bool {
	token := p.nextToken()
	return token.isKeyword() && token.value == keyword
}

// describeCurrent describes the current token for error messages.
func (p *sourceParser) describeCurrent() string {
	token := p.currentToken
	switch {
	case token.kind == tokenTypeEOF:
		return "end of file"
	case token.isKeyword():
		return fmt.Sprintf("keyword %q", token.value)
	case token.kind == tokenTypeIdentifier, token.kind == tokenTypeString,
		token.kind == tokenTypeInteger, token.kind == tokenTypeDecimal:
		return fmt.Sprintf("%v %s", token.kind, token.value)
	}
	return token.kind.String()
}

// emitError creates a new error node and attaches it to the current node.
func (p *sourceParser) emitError(format string, args ...interface{}) {
	p.attachError(p.createErrorNode(ast.StructuralError, format, args...))
}

// emitErrorOn attaches an error spanning the current token to the given node,
// which need not be on the stack.
func (p *sourceParser) emitErrorOn(n ast.Node, format string, args ...interface{}) {
	p.attachErrorTo(n, p.createErrorNode(ast.StructuralError, format, args...))
}

func (p *sourceParser) attachError(errorNode *ast.ErrorNode) {
	p.attachErrorTo(p.currentNode(), errorNode)
}

func (p *sourceParser) attachErrorTo(n ast.Node, errorNode *ast.ErrorNode) {
	p.log(slog.LevelDebug, "syntax error",
		slog.String("kind", errorNode.ErrKind.String()),
		slog.Int("offset", errorNode.Start),
		slog.String("message", errorNode.Message))

	b := n.NodeBase()
	b.Errors = append(b.Errors, errorNode)
	p.errorCount++
}

// consumeKeyword consumes an expected keyword token or adds an error node.
func (p *sourceParser) consumeKeyword(keyword string) bool {
	if !p.tryConsumeKeyword(keyword) {
		p.emitError("Expected keyword %s, found %s", keyword, p.describeCurrent())
		return false
	}
	return true
}

// tryConsumeKeyword attempts to consume an expected keyword token.
func (p *sourceParser) tryConsumeKeyword(keyword string) bool {
	if !p.isKeyword(keyword) {
		return false
	}

	p.consumeToken()
	return true
}

// consume performs consumption of the next token if it matches any of the given
// types and returns it. If no matching type is found, adds an error node.
func (p *sourceParser) consume(types ...tokenType) (lexeme, bool) {
	token, ok := p.tryConsume(types...)
	if !ok {
		if len(types) == 1 {
			p.emitError("Expected %v, found %s", types[0], p.describeCurrent())
		} else {
			p.emitError("Expected one of %v, found %s", types, p.describeCurrent())
		}
	}
	return token, ok
}

// tryConsume performs consumption of the next token if it matches any of the given
// types and returns it.
func (p *sourceParser) tryConsume(types ...tokenType) (lexeme, bool) {
	token, found := p.tryConsumeWithComments(types...)
	return token.lexeme, found
}

// tryConsumeWithComments performs consumption of the next token if it matches any of the given
// types and returns it.
func (p *sourceParser) tryConsumeWithComments(types ...tokenType) (commentedLexeme, bool) {
	if p.isToken(types...) {
		token := p.currentToken
		p.consumeToken()
		return token, true
	}

	return commentedLexeme{lexeme: lexeme{tokenTypeError, -1, ""}}, false
}

// skipUntil consumes tokens until stop reports true for a token outside any
// brackets, or the input ends. It returns the tokens skipped.
func (p *sourceParser) skipUntil(stop func(depth int) bool) int {
	var depth, skipped int
	for !p.isToken(tokenTypeEOF) {
		if stop(depth) {
			break
		}
		switch p.currentToken.kind {
		case tokenTypeLeftBrace, tokenTypeLeftParen, tokenTypeLeftBracket:
			depth++
		case tokenTypeRightBrace, tokenTypeRightParen, tokenTypeRightBracket:
			if depth > 0 {
				depth--
			}
		}
		p.consumeToken()
		skipped++
	}
	return skipped
}
