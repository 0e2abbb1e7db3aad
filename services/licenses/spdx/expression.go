// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spdx

import (
	"fmt"
	"strings"
)

// Expression operators. SPDX gives OR the lowest precedence, so
// "A AND B OR C" parses as (A AND B) OR C.
const (
	OpAnd = "AND"
	OpOr  = "OR"
)

// Expression is a node of a parsed SPDX boolean expression.
//
// A leaf carries an identifier in ID and an empty Op. An inner node carries
// OpAnd or OpOr with two or more Args. Same-operator chains are flattened
// ("MIT OR ISC OR Zlib" is one OR node with three leaves).
type Expression struct {
	ID   string
	Op   string
	Args []*Expression
}

// IsLeaf reports whether the node is a single identifier.
func (e *Expression) IsLeaf() bool { return e.Op == "" }

// Leaves returns every identifier in the expression, left to right.
func (e *Expression) Leaves() []string {
	if e.IsLeaf() {
		return []string{e.ID}
	}
	var out []string
	for _, arg := range e.Args {
		out = append(out, arg.Leaves()...)
	}
	return out
}

// String renders the expression in canonical SPDX form, parenthesizing
// OR groups nested under AND.
func (e *Expression) String() string {
	if e.IsLeaf() {
		return e.ID
	}
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		s := arg.String()
		if !arg.IsLeaf() && arg.Op != e.Op {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "+e.Op+" ")
}

// parseExpression parses an SPDX boolean expression. Every leaf identifier
// must satisfy resolve, which maps it to canonical casing or fails. A parse
// or resolution failure fails the whole expression; callers degrade to an
// unresolved declaration.
func parseExpression(input string, resolve func(string) (string, bool)) (*Expression, error) {
	tokens := tokenizeExpression(input)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	p := &exprParser{tokens: tokens, resolve: resolve}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q", p.tokens[p.pos])
	}
	return expr, nil
}

func tokenizeExpression(input string) []string {
	input = strings.ReplaceAll(input, "(", " ( ")
	input = strings.ReplaceAll(input, ")", " ) ")
	return strings.Fields(input)
}

type exprParser struct {
	tokens  []string
	pos     int
	resolve func(string) (string, bool)
}

func (p *exprParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *exprParser) parseOr() (*Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	args := []*Expression{left}
	for strings.EqualFold(p.peek(), OpOr) {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return &Expression{Op: OpOr, Args: args}, nil
}

func (p *exprParser) parseAnd() (*Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	args := []*Expression{left}
	for strings.EqualFold(p.peek(), OpAnd) {
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return &Expression{Op: OpAnd, Args: args}, nil
}

func (p *exprParser) parseTerm() (*Expression, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of expression")
	case tok == "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case tok == ")" || strings.EqualFold(tok, OpAnd) || strings.EqualFold(tok, OpOr):
		return nil, fmt.Errorf("unexpected token %q", tok)
	}

	p.pos++
	canonical, ok := p.resolve(tok)
	if !ok {
		return nil, fmt.Errorf("unknown identifier %q", tok)
	}
	leaf := &Expression{ID: canonical}

	// "Apache-2.0 WITH LLVM-exception": the exception rides along on the
	// leaf; only the license part is validated against the registry.
	if strings.EqualFold(p.peek(), "WITH") {
		p.pos++
		exc := p.peek()
		if exc == "" || exc == "(" || exc == ")" {
			return nil, fmt.Errorf("WITH missing exception identifier")
		}
		p.pos++
		leaf.ID = canonical + " WITH " + exc
	}
	return leaf, nil
}
