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
	"strings"
)

// Normalizer converts raw registry license fields into canonical declarations,
// consulting the Registry for identifier validity. It is stateless beyond the
// injected registry and safe for concurrent use.
type Normalizer struct {
	registry *Registry
}

// NewNormalizer builds a Normalizer over the given registry.
func NewNormalizer(registry *Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize converts a raw license field into a canonical declaration.
//
// Resolution order per shape:
//  1. String matching a known SPDX identifier (case-insensitive) → identifier.
//  2. String parsing as an SPDX boolean expression with all leaves known →
//     expression.
//  3. Single-entry list/object → treated as case 1/2 on its type field.
//  4. Multi-entry list → OR expression across resolvable entries
//     (dual licensing is a choice, not a conjunction).
//  5. Everything else → unresolved, raw text preserved.
//
// Normalize is total: it never fails, so a bad declaration buried in a batch
// degrades to an unresolved entry instead of aborting the batch.
func (n *Normalizer) Normalize(raw RawLicense) Declaration {
	switch raw.Kind {
	case RawString:
		return n.normalizeString(raw.Value)
	case RawObject:
		return n.normalizeString(raw.Value)
	case RawList:
		return n.normalizeList(raw.Entries)
	default:
		return Unresolved("")
	}
}

// NormalizeString is a convenience for callers holding a bare string field.
func (n *Normalizer) NormalizeString(s string) Declaration {
	return n.normalizeString(s)
}

func (n *Normalizer) normalizeString(value string) Declaration {
	cleaned := collapseWhitespace(value)
	if cleaned == "" {
		return Unresolved(value)
	}

	// npm's "SEE LICENSE IN <file>" convention points at a file we never
	// fetch; the declaration stays unresolved with the text preserved.
	if strings.HasPrefix(strings.ToUpper(cleaned), "SEE LICENSE IN") {
		return Unresolved(cleaned)
	}

	if canonical, ok := n.resolveIdentifier(cleaned); ok {
		return Identifier(canonical, cleaned)
	}

	if looksLikeExpression(cleaned) {
		expr, err := parseExpression(cleaned, n.resolveIdentifier)
		if err == nil {
			if expr.IsLeaf() {
				return Identifier(expr.ID, cleaned)
			}
			return Declaration{Kind: KindExpression, Expr: expr, Raw: cleaned}
		}
	}

	return Unresolved(cleaned)
}

func (n *Normalizer) normalizeList(entries []string) Declaration {
	raw := strings.Join(entries, " OR ")
	switch len(entries) {
	case 0:
		return Unresolved("")
	case 1:
		return n.normalizeString(entries[0])
	}

	var args []*Expression
	for _, entry := range entries {
		decl := n.normalizeString(entry)
		switch decl.Kind {
		case KindIdentifier:
			args = append(args, &Expression{ID: decl.ID})
		case KindExpression:
			args = append(args, decl.Expr)
		}
		// Unresolvable entries drop out of the disjunction; the integrator
		// cannot pick a branch nobody can verify.
	}

	switch len(args) {
	case 0:
		return Unresolved(raw)
	case 1:
		if args[0].IsLeaf() {
			return Identifier(args[0].ID, raw)
		}
		return Declaration{Kind: KindExpression, Expr: args[0], Raw: raw}
	}
	return Declaration{
		Kind: KindExpression,
		Expr: &Expression{Op: OpOr, Args: args},
		Raw:  raw,
	}
}

// resolveIdentifier maps a single token to its canonical SPDX casing. A
// trailing "+" (legacy or-later marker) is retried without the suffix when
// the suffixed form itself is not in the dataset.
func (n *Normalizer) resolveIdentifier(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	if rec, err := n.registry.Lookup(token); err == nil {
		return rec.LicenseID, true
	}
	if strings.HasSuffix(token, "+") {
		if rec, err := n.registry.Lookup(strings.TrimSuffix(token, "+")); err == nil {
			return rec.LicenseID + "+", true
		}
	}
	return "", false
}

func looksLikeExpression(s string) bool {
	upper := " " + strings.ToUpper(s) + " "
	return strings.Contains(upper, " AND ") ||
		strings.Contains(upper, " OR ") ||
		strings.Contains(s, "(")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
