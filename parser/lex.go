// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"strings"
	"unicode/utf8"
)

// EOFRUNE is returned by next when the input is exhausted.
const EOFRUNE = -1

// bytePosition is a byte offset into the lexed input.
type bytePosition int

// lexeme represents a token returned from scanning the contents of a file.
type lexeme struct {
	kind     tokenType    // The type of this lexeme.
	position bytePosition // The starting position of this token in the input string.
	value    string       // The textual value of this token.
}

// isKeyword reports whether the lexeme is an identifier spelled like a
// WebIDL keyword. Rules decide whether it acts as one.
func (l lexeme) isKeyword() bool {
	return l.kind == tokenTypeIdentifier && keywords[l.value]
}

// end returns the position just past the lexeme.
func (l lexeme) end() bytePosition {
	return l.position + bytePosition(len(l.value))
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input   string       // the string being scanned
	state   stateFn      // the next lexing function to enter
	pos     bytePosition // current position in the input
	start   bytePosition // start position of this token
	width   bytePosition // width of last rune read from input
	pending []lexeme     // scanned lexemes not yet returned
}

// buildlex creates a new scanner for the input string, starting at the given state.
func buildlex(input string, startState stateFn) *lexer {
	return &lexer{
		input: input,
		state: startState,
	}
}

// nextToken returns the next token from the input, running state functions
// until one is available. Once the input is exhausted it keeps returning EOF.
func (l *lexer) nextToken() lexeme {
	for len(l.pending) == 0 {
		if l.state == nil {
			return lexeme{tokenTypeEOF, l.pos, ""}
		}
		l.state = l.state(l)
	}
	token := l.pending[0]
	l.pending = l.pending[1:]
	return token
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.width = 0
		return EOFRUNE
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = bytePosition(w)
	l.pos += l.width
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can be called only once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// value returns the text of the token scanned so far.
func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

// emit passes a token back to the client.
func (l *lexer) emit(t tokenType) {
	l.pending = append(l.pending, lexeme{t, l.start, l.value()})
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptString consumes the given string if it comes next in the input.
func (l *lexer) acceptString(s string) bool {
	if strings.HasPrefix(l.input[l.pos:], s) {
		l.pos += bytePosition(len(s))
		return true
	}
	return false
}

// acceptN consumes n bytes of input.
func (l *lexer) acceptN(n int) {
	l.pos += bytePosition(n)
}

// lexError emits the text scanned so far as an error token and resumes
// lexing at the current position.
func (l *lexer) lexError() stateFn {
	l.emit(tokenTypeError)
	return lexSource
}

// checkFn returns whether the rune should continue a token being built.
type checkFn func(r rune) bool

// buildLexUntil returns a state function that consumes runes while checker
// accepts them and then emits a token of the given kind.
func buildLexUntil(kind tokenType, checker checkFn) stateFn {
	return func(l *lexer) stateFn {
		for {
			r := l.peek()
			if r == EOFRUNE || !checker(r) {
				break
			}
			l.next()
		}
		l.emit(kind)
		return lexSource
	}
}
