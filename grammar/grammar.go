// Package grammar holds the WebIDL syntax accepted by package parser as an
// EBNF document in the notation of golang.org/x/exp/ebnf.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the name of the production a WebIDL file is derived from.
const Start = "Source"

//go:embed webidl.ebnf
var source string

// Source returns the EBNF document.
func Source() string {
	return source
}

// Load parses the EBNF document and verifies that every production is
// defined and reachable from Start.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("webidl.ebnf", strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// isLexical reports whether the production name denotes a token class.
func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}

// Fprint writes g to w in canonical form, one production per line, sorted by
// name.
func Fprint(w io.Writer, g ebnf.Grammar) error {
	var names []string
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		p := g[name]
		fmt.Fprintf(&b, "%s = ", p.Name.String)
		if p.Expr != nil {
			writeExpr(&b, p.Expr)
		}
		b.WriteString(" .\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeExpr(b *strings.Builder, e ebnf.Expression) {
	switch x := e.(type) {
	case ebnf.Sequence:
		for i, v := range x {
			if i != 0 {
				b.WriteByte(' ')
			}
			writeExpr(b, v)
		}
	case ebnf.Alternative:
		for i, v := range x {
			if i != 0 {
				b.WriteString(" | ")
			}
			writeExpr(b, v)
		}
	case *ebnf.Name:
		b.WriteString(x.String)
	case *ebnf.Token:
		fmt.Fprintf(b, "%q", x.String)
	case *ebnf.Range:
		writeExpr(b, x.Begin)
		b.WriteString(" … ")
		writeExpr(b, x.End)
	case *ebnf.Group:
		b.WriteString("( ")
		writeExpr(b, x.Body)
		b.WriteString(" )")
	case *ebnf.Option:
		b.WriteString("[ ")
		writeExpr(b, x.Body)
		b.WriteString(" ]")
	case *ebnf.Repetition:
		b.WriteString("{ ")
		writeExpr(b, x.Body)
		b.WriteString(" }")
	case nil:
	default:
		panic(fmt.Sprintf("grammar: unexpected expression %T", x))
	}
}

var wordPattern = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)

// Keywords returns the identifier-like tokens named by the syntactic
// productions of g, sorted.
func Keywords(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	var visit func(e ebnf.Expression)
	visit = func(e ebnf.Expression) {
		switch x := e.(type) {
		case ebnf.Sequence:
			for _, v := range x {
				visit(v)
			}
		case ebnf.Alternative:
			for _, v := range x {
				visit(v)
			}
		case *ebnf.Group:
			visit(x.Body)
		case *ebnf.Option:
			visit(x.Body)
		case *ebnf.Repetition:
			visit(x.Body)
		case *ebnf.Token:
			if wordPattern.MatchString(x.String) {
				seen[x.String] = true
			}
		}
	}
	for name, p := range g {
		if !isLexical(name) {
			visit(p.Expr)
		}
	}

	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// LeftRecursive returns the syntactic productions of g that can derive a
// form starting with themselves, sorted. A recursive-descent parser needs
// this to be empty.
func LeftRecursive(g ebnf.Grammar) []string {
	nullable := nullableProductions(g)

	// first[name] holds the syntactic productions that may appear leftmost
	// in a derivation of name.
	first := make(map[string]map[string]bool)
	for name, p := range g {
		if isLexical(name) {
			continue
		}
		set := make(map[string]bool)
		leftNames(p.Expr, nullable, set)
		first[name] = set
	}

	var out []string
	for name := range first {
		if reachesLeft(first, name, name, make(map[string]bool)) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func reachesLeft(first map[string]map[string]bool, from, target string, visited map[string]bool) bool {
	for next := range first[from] {
		if next == target {
			return true
		}
		if visited[next] {
			continue
		}
		visited[next] = true
		if reachesLeft(first, next, target, visited) {
			return true
		}
	}
	return false
}

// leftNames adds to set the syntactic names that can start e.
func leftNames(e ebnf.Expression, nullable map[string]bool, set map[string]bool) {
	switch x := e.(type) {
	case ebnf.Sequence:
		for _, v := range x {
			leftNames(v, nullable, set)
			if !isNullable(v, nullable) {
				return
			}
		}
	case ebnf.Alternative:
		for _, v := range x {
			leftNames(v, nullable, set)
		}
	case *ebnf.Group:
		leftNames(x.Body, nullable, set)
	case *ebnf.Option:
		leftNames(x.Body, nullable, set)
	case *ebnf.Repetition:
		leftNames(x.Body, nullable, set)
	case *ebnf.Name:
		if !isLexical(x.String) {
			set[x.String] = true
		}
	}
}

// nullableProductions computes the productions that derive the empty string.
func nullableProductions(g ebnf.Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, p := range g {
			if !nullable[name] && isNullable(p.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func isNullable(e ebnf.Expression, nullable map[string]bool) bool {
	switch x := e.(type) {
	case nil:
		return true
	case ebnf.Sequence:
		for _, v := range x {
			if !isNullable(v, nullable) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, v := range x {
			if isNullable(v, nullable) {
				return true
			}
		}
		return false
	case *ebnf.Group:
		return isNullable(x.Body, nullable)
	case *ebnf.Option, *ebnf.Repetition:
		return true
	case *ebnf.Name:
		return nullable[x.String]
	case *ebnf.Token:
		return x.String == ""
	}
	return false
}
