// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// lex creates a new scanner for the input string.
func lex(input string) *lexer {
	return buildlex(input, lexSource)
}

// tokenType identifies the type of lexer lexemes.
type tokenType int

const (
	tokenTypeError tokenType = iota // unrecognized input; value is the offending text
	tokenTypeEOF
	tokenTypeWhitespace
	tokenTypeComment

	tokenTypeIdentifier // helloworld, interface
	tokenTypeString     // "hello"
	tokenTypeInteger    // 123, -0x1F, 017
	tokenTypeDecimal    // 1.5, -.5e3

	tokenTypeLeftBrace    // {
	tokenTypeRightBrace   // }
	tokenTypeLeftParen    // (
	tokenTypeRightParen   // )
	tokenTypeLeftBracket  // [
	tokenTypeRightBracket // ]
	tokenTypeLeftTri      // <
	tokenTypeRightTri     // >

	tokenTypeEquals       // =
	tokenTypeSemicolon    // ;
	tokenTypeComma        // ,
	tokenTypeQuestionMark // ?
	tokenTypeColon        // :
	tokenTypeVariadic     // ...
	tokenTypeAsterisk     // *
)

var tokenTypeNames = [...]string{
	tokenTypeError:        "error",
	tokenTypeEOF:          "end of file",
	tokenTypeWhitespace:   "whitespace",
	tokenTypeComment:      "comment",
	tokenTypeIdentifier:   "identifier",
	tokenTypeString:       "string",
	tokenTypeInteger:      "integer",
	tokenTypeDecimal:      "decimal",
	tokenTypeLeftBrace:    "'{'",
	tokenTypeRightBrace:   "'}'",
	tokenTypeLeftParen:    "'('",
	tokenTypeRightParen:   "')'",
	tokenTypeLeftBracket:  "'['",
	tokenTypeRightBracket: "']'",
	tokenTypeLeftTri:      "'<'",
	tokenTypeRightTri:     "'>'",
	tokenTypeEquals:       "'='",
	tokenTypeSemicolon:    "';'",
	tokenTypeComma:        "','",
	tokenTypeQuestionMark: "'?'",
	tokenTypeColon:        "':'",
	tokenTypeVariadic:     "'...'",
	tokenTypeAsterisk:     "'*'",
}

func (t tokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("tokenType(%d)", int(t))
}

// keywords holds the spellings the grammar treats as keywords where it
// expects one. Everywhere else they are ordinary identifiers.
var keywords = map[string]bool{}

func init() {
	for _, kw := range strings.Fields(`
		interface mixin partial callback namespace dictionary enum typedef
		includes implements
		const attribute readonly inherit static stringifier
		getter setter deleter iterable async maplike setlike constructor
		required optional or
		true false null undefined Infinity -Infinity NaN
		any object symbol boolean byte octet bigint
		short long unsigned unrestricted float double
		ByteString DOMString USVString
		sequence record Promise FrozenArray ObservableArray
	`) {
		keywords[kw] = true
	}
	for kw := range bufferRelatedTypes {
		keywords[kw] = true
	}
}

var bufferRelatedTypes = map[string]bool{
	"ArrayBuffer":       true,
	"SharedArrayBuffer": true,
	"DataView":          true,
	"Int8Array":         true,
	"Int16Array":        true,
	"Int32Array":        true,
	"Uint8Array":        true,
	"Uint16Array":       true,
	"Uint32Array":       true,
	"Uint8ClampedArray": true,
	"BigInt64Array":     true,
	"BigUint64Array":    true,
	"Float16Array":      true,
	"Float32Array":      true,
	"Float64Array":      true,
}

var (
	integerPattern = regexp.MustCompile(`^-?([1-9][0-9]*|0[Xx][0-9A-Fa-f]+|0[0-7]*)`)
	decimalPattern = regexp.MustCompile(`^-?(([0-9]+\.[0-9]*|[0-9]*\.[0-9]+)([Ee][+-]?[0-9]+)?|[0-9]+[Ee][+-]?[0-9]+)`)
)

func init() {
	integerPattern.Longest()
	decimalPattern.Longest()
}

// lexSource scans until EOFRUNE
func lexSource(l *lexer) stateFn {
Loop:
	for {
		switch r := l.next(); {
		case r == EOFRUNE:
			break Loop

		case r == '{':
			l.emit(tokenTypeLeftBrace)

		case r == '}':
			l.emit(tokenTypeRightBrace)

		case r == '(':
			l.emit(tokenTypeLeftParen)

		case r == ')':
			l.emit(tokenTypeRightParen)

		case r == '[':
			l.emit(tokenTypeLeftBracket)

		case r == ']':
			l.emit(tokenTypeRightBracket)

		case r == '<':
			l.emit(tokenTypeLeftTri)

		case r == '>':
			l.emit(tokenTypeRightTri)

		case r == ';':
			l.emit(tokenTypeSemicolon)

		case r == ',':
			l.emit(tokenTypeComma)

		case r == '=':
			l.emit(tokenTypeEquals)

		case r == '?':
			l.emit(tokenTypeQuestionMark)

		case r == ':':
			l.emit(tokenTypeColon)

		case r == '*':
			l.emit(tokenTypeAsterisk)

		case r == '.':
			if l.acceptString("..") {
				l.emit(tokenTypeVariadic)
			} else if isDigit(l.peek()) {
				l.backup()
				return lexNumber
			} else {
				return lexUnrecognized
			}

		case isSpace(r) || isNewline(r):
			l.emit(tokenTypeWhitespace)

		case r == '"':
			l.backup()
			return lexStringLiteral

		case isLetter(r):
			l.backup()
			return lexIdentifierOrKeyword

		case isDigit(r):
			l.backup()
			return lexNumber

		case r == '-' || r == '_':
			next := l.peek()
			switch {
			case isLetter(next):
				l.backup()
				return lexIdentifierOrKeyword
			case r == '-' && (isDigit(next) || next == '.'):
				l.backup()
				return lexNumber
			}
			return lexUnrecognized

		case r == '/':
			if l.peek() == '/' {
				return lexSinglelineComment
			}
			if l.peek() == '*' {
				return lexMultilineComment
			}
			return lexUnrecognized

		default:
			return lexUnrecognized
		}
	}

	l.emit(tokenTypeEOF)
	return nil
}

// lexUnrecognized consumes a run of characters that cannot start a token
// and emits it as a single error token.
func lexUnrecognized(l *lexer) stateFn {
	for {
		r := l.peek()
		if r == EOFRUNE || startsToken(r) {
			break
		}
		l.next()
	}
	return l.lexError()
}

// startsToken reports whether r can begin a token or a separator.
func startsToken(r rune) bool {
	return isSpace(r) || isNewline(r) || isLetter(r) || isDigit(r) ||
		strings.ContainsRune(`{}()[]<>;,=?:*"/.-_`, r)
}

// lexSinglelineComment scans until newline or EOFRUNE
func lexSinglelineComment(l *lexer) stateFn {
	checker := func(r rune) bool {
		return !isNewline(r)
	}

	l.acceptString("/")
	return buildLexUntil(tokenTypeComment, checker)
}

// lexMultilineComment scans until the closing */. Comments do not nest.
func lexMultilineComment(l *lexer) stateFn {
	l.acceptString("*")
	end := strings.Index(l.input[l.pos:], "*/")
	if end < 0 {
		l.acceptN(len(l.input) - int(l.pos))
		return l.lexError()
	}
	l.acceptN(end + len("*/"))
	l.emit(tokenTypeComment)
	return lexSource
}

// lexIdentifierOrKeyword searches for a keyword or literal identifier.
func lexIdentifierOrKeyword(l *lexer) stateFn {
	l.accept("_-")
	for isIdentifierRune(l.peek()) {
		l.next()
	}
	l.emit(tokenTypeIdentifier)
	return lexSource
}

// lexNumber scans the longest integer or decimal literal at the current position.
func lexNumber(l *lexer) stateFn {
	rest := l.input[l.pos:]
	intLen := len(integerPattern.FindString(rest))
	decLen := len(decimalPattern.FindString(rest))

	switch {
	case decLen > intLen:
		l.acceptN(decLen)
		l.emit(tokenTypeDecimal)
	case intLen > 0:
		l.acceptN(intLen)
		l.emit(tokenTypeInteger)
	default:
		l.next()
		return lexUnrecognized
	}
	return lexSource
}

// lexStringLiteral scans a double-quoted string. There are no escapes.
func lexStringLiteral(l *lexer) stateFn {
	l.accept(`"`)
	end := strings.IndexByte(l.input[l.pos:], '"')
	if end < 0 {
		l.acceptN(len(l.input) - int(l.pos))
		return l.lexError()
	}
	l.acceptN(end + 1)
	l.emit(tokenTypeString)
	return lexSource
}

// lexErrorMessage describes the text of an error token.
func lexErrorMessage(value string) string {
	switch {
	case strings.HasPrefix(value, `"`):
		return "unterminated string literal"
	case strings.HasPrefix(value, "/*"):
		return "unterminated comment"
	}
	return fmt.Sprintf("unrecognized input %q", value)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\f', '\v', '\uFEFF', '\u2060', '\u200B':
		return true
	}
	return !isNewline(r) && unicode.IsSpace(r)
}

func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '-'
}
