/*
   Copyright 2020 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package yappla

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CompiledExpression is a parsed expression over the sublanguage of literals,
// variable references, equality, and the logical operators not/and/or. Parse
// happens once (Compile); Eval is pure and reentrant, and is called against
// thousands of states during a single Planner.Plan run.
type CompiledExpression struct {
	text string
	root exprNode
}

// String returns the original source text the expression was compiled from.
func (c *CompiledExpression) String() string { return c.text }

// exprNode is the AST of a compiled expression.
type exprNode interface {
	eval(env func(name string) (Value, bool)) (Value, error)
}

type (
	litNode struct{ value Value }
	varNode struct{ name string }
	notNode struct{ x exprNode }
	eqNode  struct{ a, b exprNode }
	andNode struct{ terms []exprNode }
	orNode  struct{ terms []exprNode }
)

func (n litNode) eval(func(string) (Value, bool)) (Value, error) { return n.value, nil }

func (n varNode) eval(env func(string) (Value, bool)) (Value, error) {
	v, ok := env(n.name)
	if !ok {
		return Value{}, &UnboundVariable{Name: n.name}
	}
	return v, nil
}

func (n notNode) eval(env func(string) (Value, bool)) (Value, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return Value{}, err
	}
	return Bool(!v.Truthy()), nil
}

func (n eqNode) eval(env func(string) (Value, bool)) (Value, error) {
	a, err := n.a.eval(env)
	if err != nil {
		return Value{}, err
	}
	b, err := n.b.eval(env)
	if err != nil {
		return Value{}, err
	}
	return Bool(a.Equal(b)), nil
}

func (n andNode) eval(env func(string) (Value, bool)) (Value, error) {
	var last Value = Bool(true)
	for _, term := range n.terms {
		v, err := term.eval(env)
		if err != nil {
			return Value{}, err
		}
		if !v.Truthy() {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func (n orNode) eval(env func(string) (Value, bool)) (Value, error) {
	var last Value = Bool(false)
	for _, term := range n.terms {
		v, err := term.eval(env)
		if err != nil {
			return Value{}, err
		}
		if v.Truthy() {
			return v, nil
		}
		last = v
	}
	return last, nil
}

// Compile parses text once into a CompiledExpression. An empty string
// compiles to the literal "always true" expression (used for empty
// preconditions, per spec §4.1/§4.3). A syntax error is returned wrapped as
// *InvalidExpression.
func Compile(text string) (*CompiledExpression, error) {
	if strings.TrimSpace(text) == "" {
		return &CompiledExpression{text: text, root: litNode{value: Bool(true)}}, nil
	}
	p := &exprParser{lex: newExprLexer(text)}
	if err := p.advance(); err != nil {
		return nil, &InvalidExpression{Text: text, Cause: err}
	}
	root, err := p.parseOr()
	if err != nil {
		return nil, &InvalidExpression{Text: text, Cause: err}
	}
	if p.tok.kind != tokEOF {
		return nil, &InvalidExpression{Text: text, Cause: errors.Errorf("unexpected trailing token %q", p.tok.text)}
	}
	return &CompiledExpression{text: text, root: root}, nil
}

// Eval evaluates the compiled expression against a state's variable
// environment. Variable lookups that miss the state surface as
// *UnboundVariable, per spec §4.1.
func (c *CompiledExpression) Eval(state State) (Value, error) {
	return c.root.eval(func(name string) (Value, bool) { return state.get(name) })
}

// EvalBool evaluates the compiled expression and converts the result to a
// bool using the truthy/falsy convention (spec §4.1). In practice callers
// always supply Boolean expressions for goals and preconditions.
func (c *CompiledExpression) EvalBool(state State) (bool, error) {
	v, err := c.Eval(state)
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

// --- lexer ---

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokTrue
	tokFalse
	tokNot
	tokAnd
	tokOr
	tokEq
	tokLParen
	tokRParen
	tokIdent
	tokInt
	tokReal
	tokString
)

type token struct {
	kind tokenKind
	text string
}

type exprLexer struct {
	src []rune
	pos int
}

func newExprLexer(text string) *exprLexer { return &exprLexer{src: []rune(text)} }

func (l *exprLexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *exprLexer) next() (token, error) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\n' || l.src[l.pos] == '\r') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "("}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")"}, nil
	case c == '=' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '=':
		l.pos += 2
		return token{kind: tokEq, text: "=="}, nil
	case c == '\'' || c == '"':
		return l.lexString(c)
	case c >= '0' && c <= '9':
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdent()
	default:
		return token{}, errors.Errorf("unexpected character %q at offset %d", c, l.pos)
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *exprLexer) lexString(quote rune) (token, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, errors.Errorf("unterminated string literal starting at offset %d", start)
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			break
		}
		sb.WriteRune(c)
		l.pos++
	}
	return token{kind: tokString, text: sb.String()}, nil
}

func (l *exprLexer) lexNumber() (token, error) {
	start := l.pos
	isReal := false
	for l.pos < len(l.src) && (l.src[l.pos] >= '0' && l.src[l.pos] <= '9') {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isReal = true
		l.pos++
		for l.pos < len(l.src) && (l.src[l.pos] >= '0' && l.src[l.pos] <= '9') {
			l.pos++
		}
	}
	text := string(l.src[start:l.pos])
	if isReal {
		return token{kind: tokReal, text: text}, nil
	}
	return token{kind: tokInt, text: text}, nil
}

func (l *exprLexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	switch text {
	case "True":
		return token{kind: tokTrue, text: text}, nil
	case "False":
		return token{kind: tokFalse, text: text}, nil
	case "not":
		return token{kind: tokNot, text: text}, nil
	case "and":
		return token{kind: tokAnd, text: text}, nil
	case "or":
		return token{kind: tokOr, text: text}, nil
	default:
		return token{kind: tokIdent, text: text}, nil
	}
}

// --- recursive-descent parser, precedence: not > and > or ---

type exprParser struct {
	lex *exprLexer
	tok token
}

func (p *exprParser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseOr := parseAnd ( "or" parseAnd )*
func (p *exprParser) parseOr() (exprNode, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []exprNode{first}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return orNode{terms: terms}, nil
}

// parseAnd := parseNot ( "and" parseNot )*
func (p *exprParser) parseAnd() (exprNode, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	terms := []exprNode{first}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return andNode{terms: terms}, nil
}

// parseNot := "not" parseNot | parseEq
func (p *exprParser) parseNot() (exprNode, error) {
	if p.tok.kind == tokNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{x: x}, nil
	}
	return p.parseEq()
}

// parseEq := parsePrimary ( "==" parsePrimary )?
func (p *exprParser) parseEq() (exprNode, error) {
	a, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokEq {
		if err := p.advance(); err != nil {
			return nil, err
		}
		b, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return eqNode{a: a, b: b}, nil
	}
	return a, nil
}

func (p *exprParser) parsePrimary() (exprNode, error) {
	switch p.tok.kind {
	case tokTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return litNode{value: Bool(true)}, nil
	case tokFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return litNode{value: Bool(false)}, nil
	case tokInt:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid integer literal %q", text)
		}
		return litNode{value: Int(n)}, nil
	case tokReal:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid real literal %q", text)
		}
		return litNode{value: Real(f)}, nil
	case tokString:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return litNode{value: String(text)}, nil
	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return varNode{name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, errors.Errorf("expected ')', got %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, errors.Errorf("unexpected token %q", p.tok.text)
	}
}
