// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package compat classifies licenses into compatibility categories and
// evaluates a directional compatibility relation between canonical
// declarations. The rule tables live in embedded YAML (see the rules
// subpackage) so the logic stays auditable as data.
package compat

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/osli/services/licenses/compat/rules"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// Verdict is the outcome of a directional compatibility evaluation. The
// relation is not symmetric: Evaluate(A, B) may differ from Evaluate(B, A).
type Verdict struct {
	Compatible bool   `json:"compatible"`
	Reason     string `json:"reason"`
}

// AuditStatus classifies one dependency against the fixed closed-source
// baseline.
type AuditStatus string

const (
	StatusSafe    AuditStatus = "SAFE"
	StatusWarn    AuditStatus = "WARN"
	StatusUnknown AuditStatus = "UNKNOWN"
)

// Conflict is the outcome of a pairwise conflict resolution.
type Conflict struct {
	HasConflict bool   `json:"has_conflict"`
	Reason      string `json:"reason,omitempty"`
}

// Engine evaluates license compatibility. Construct once with NewEngine;
// the tables are immutable afterwards, so the engine is safe for
// concurrent use.
type Engine struct {
	exact     map[string]Category
	prefixes  []prefixRule
	overrides map[string]overrideRule
}

// NewEngine parses the embedded rule tables. It fails only on a malformed
// rules file, which is a build defect rather than a runtime condition.
func NewEngine() (*Engine, error) {
	var file ruleFile
	if err := yaml.Unmarshal(rules.LicenseRules, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded rules file: %w", err)
	}

	exact := make(map[string]Category)
	for name, ids := range file.Categories {
		category := Category(name)
		if _, ok := restrictiveness[category]; !ok || category == Unknown {
			return nil, fmt.Errorf("invalid category %q in embedded rules", name)
		}
		for _, id := range ids {
			exact[strings.ToLower(id)] = category
		}
	}

	overrides := make(map[string]overrideRule, len(file.Overrides))
	for _, ov := range file.Overrides {
		if ov.Consumer == "" || ov.Dependency == "" || ov.Reason == "" {
			return nil, fmt.Errorf("override entry missing consumer, dependency, or reason")
		}
		overrides[overrideKey(ov.Consumer, ov.Dependency)] = ov
	}

	return &Engine{exact: exact, prefixes: file.Prefixes, overrides: overrides}, nil
}

// Classify maps an identifier to its compatibility category.
//
// Resolution order: exact table match (case-insensitive), then the ordered
// prefix heuristics for family variants, then Unknown. Classify is total:
// it never fails, because classification feeds a best-effort verdict, not
// a hard gate.
func (e *Engine) Classify(identifier string) Category {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return Unknown
	}

	// An exception rider never changes the license's own category.
	if base, _, found := strings.Cut(id, " WITH "); found {
		id = base
	}
	// Legacy or-later marker classifies with its family.
	id = strings.TrimSuffix(id, "+")

	if category, ok := e.exact[strings.ToLower(id)]; ok {
		return category
	}
	for _, rule := range e.prefixes {
		if hasPrefixFold(id, rule.Prefix) {
			return rule.Category
		}
	}
	return Unknown
}

// ClassifyDeclaration folds a whole declaration to one category. A
// disjunction takes its most permissive branch (the integrator's choice);
// a conjunction is bound by its most restrictive conjunct.
func (e *Engine) ClassifyDeclaration(decl spdx.Declaration) Category {
	switch decl.Kind {
	case spdx.KindIdentifier:
		return e.Classify(decl.ID)
	case spdx.KindExpression:
		return e.classifyExpression(decl.Expr)
	default:
		// Unresolved declarations still classify by raw text: npm's
		// "UNLICENSED" convention is not an SPDX id but is proprietary.
		return e.Classify(decl.Raw)
	}
}

func (e *Engine) classifyExpression(expr *spdx.Expression) Category {
	if expr.IsLeaf() {
		return e.Classify(expr.ID)
	}
	best := e.classifyExpression(expr.Args[0])
	for _, arg := range expr.Args[1:] {
		c := e.classifyExpression(arg)
		if expr.Op == spdx.OpOr && restrictiveness[c] < restrictiveness[best] {
			best = c
		}
		if expr.Op == spdx.OpAnd && restrictiveness[c] > restrictiveness[best] {
			best = c
		}
	}
	return best
}

// Evaluate decides whether a consumer under one declaration may take a
// dependency under another.
//
// The relation fails closed: unresolved or unclassifiable licenses are
// never assumed safe. Dual-licensed (OR) dependencies succeed when any
// disjunct is acceptable; AND terms must all be acceptable. Evaluate is
// total and always populates a reason naming both inputs.
func (e *Engine) Evaluate(consumer, dependency spdx.Declaration) Verdict {
	if consumer.Kind == spdx.KindUnresolved {
		return Verdict{
			Compatible: false,
			Reason: fmt.Sprintf("the consumer license %q could not be verified against the SPDX dataset",
				consumer.String()),
		}
	}
	if dependency.Kind == spdx.KindUnresolved {
		return Verdict{
			Compatible: false,
			Reason: fmt.Sprintf("the dependency license %q could not be verified against the SPDX dataset",
				dependency.String()),
		}
	}

	// Multi-valued consumers: an OR consumer may pick its outbound branch,
	// an AND consumer must satisfy every term.
	if consumer.Kind == spdx.KindExpression && !consumer.Expr.IsLeaf() {
		return e.evaluateExpressionConsumer(consumer, dependency)
	}

	if dependency.Kind == spdx.KindExpression && !dependency.Expr.IsLeaf() {
		return e.evaluateExpressionDependency(consumer, dependency)
	}

	return e.evaluatePair(leafID(consumer), leafID(dependency))
}

func (e *Engine) evaluateExpressionConsumer(consumer, dependency spdx.Declaration) Verdict {
	expr := consumer.Expr
	var firstFailure *Verdict
	for _, arg := range expr.Args {
		v := e.Evaluate(declFromExpr(arg, consumer.Raw), dependency)
		if expr.Op == spdx.OpOr && v.Compatible {
			return v
		}
		if expr.Op == spdx.OpAnd && !v.Compatible {
			return v
		}
		if firstFailure == nil && !v.Compatible {
			firstFailure = &v
		}
	}
	if expr.Op == spdx.OpAnd {
		return Verdict{
			Compatible: true,
			Reason: fmt.Sprintf("every term of %s accepts a dependency under %s",
				consumer.String(), dependency.String()),
		}
	}
	if firstFailure != nil {
		return *firstFailure
	}
	return Verdict{
		Compatible: false,
		Reason: fmt.Sprintf("no branch of %s accepts a dependency under %s",
			consumer.String(), dependency.String()),
	}
}

func (e *Engine) evaluateExpressionDependency(consumer, dependency spdx.Declaration) Verdict {
	expr := dependency.Expr
	if expr.Op == spdx.OpOr {
		// Dual licensing is a choice: the integrator picks the most
		// permissive branch that works.
		for _, arg := range expr.Args {
			v := e.Evaluate(consumer, declFromExpr(arg, dependency.Raw))
			if v.Compatible {
				return Verdict{
					Compatible: true,
					Reason: fmt.Sprintf("dependency offers %s; the %s branch is compatible with %s (%s)",
						dependency.String(), arg.String(), consumer.String(), v.Reason),
				}
			}
		}
		return Verdict{
			Compatible: false,
			Reason: fmt.Sprintf("no branch of the dual license %s is compatible with %s",
				dependency.String(), consumer.String()),
		}
	}

	// AND terms all apply at once.
	for _, arg := range expr.Args {
		v := e.Evaluate(consumer, declFromExpr(arg, dependency.Raw))
		if !v.Compatible {
			return Verdict{
				Compatible: false,
				Reason: fmt.Sprintf("the %s term of %s is incompatible with %s (%s)",
					arg.String(), dependency.String(), consumer.String(), v.Reason),
			}
		}
	}
	return Verdict{
		Compatible: true,
		Reason: fmt.Sprintf("every term of %s is compatible with %s",
			dependency.String(), consumer.String()),
	}
}

// evaluatePair applies the override table, then category dominance, to a
// single-identifier pair.
func (e *Engine) evaluatePair(consumer, dependency string) Verdict {
	if ov, ok := e.overrides[overrideKey(consumer, dependency)]; ok {
		return Verdict{Compatible: ov.Compatible, Reason: ov.Reason}
	}

	consumerCat := e.Classify(consumer)
	dependencyCat := e.Classify(dependency)

	if consumerCat == Unknown {
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("%s cannot be classified, so compatibility with %s cannot be established", consumer, dependency),
		}
	}
	if dependencyCat == Unknown {
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("%s cannot be classified, so compatibility with %s cannot be established", dependency, consumer),
		}
	}

	switch dependencyCat {
	case Permissive:
		return Verdict{
			Compatible: true,
			Reason:     fmt.Sprintf("%s is permissive and imposes no conflicting obligations on %s", dependency, consumer),
		}
	case WeakCopyleft:
		return Verdict{
			Compatible: true,
			Reason: fmt.Sprintf("%s is compatible with %s, but modifications to the %s-licensed files themselves trigger file-level copyleft obligations",
				dependency, consumer, dependency),
		}
	case StrongCopyleft:
		if consumerCat == StrongCopyleft || consumerCat == NetworkCopyleft {
			return Verdict{
				Compatible: true,
				Reason:     fmt.Sprintf("%s and %s are both copyleft and share compatible obligations", consumer, dependency),
			}
		}
		return Verdict{
			Compatible: false,
			Reason: fmt.Sprintf("%s is strong copyleft; a %s consumer would have to relicense the combined work under its terms",
				dependency, consumer),
		}
	case NetworkCopyleft:
		if consumerCat == NetworkCopyleft {
			return Verdict{
				Compatible: true,
				Reason:     fmt.Sprintf("%s and %s share network copyleft obligations", consumer, dependency),
			}
		}
		return Verdict{
			Compatible: false,
			Reason: fmt.Sprintf("%s requires source disclosure for network service use, which a %s consumer does not satisfy",
				dependency, consumer),
		}
	default: // Proprietary
		if consumerCat == Proprietary {
			return Verdict{
				Compatible: true,
				Reason:     fmt.Sprintf("%s and %s are both proprietary; terms must be checked contract by contract", consumer, dependency),
			}
		}
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("%s grants no open-source redistribution rights that %s could rely on", dependency, consumer),
		}
	}
}

// AuditBatch classifies each declaration against the fixed closed-source
// baseline. Entries are independent; one bad declaration never aborts the
// batch.
func (e *Engine) AuditBatch(declarations []spdx.Declaration) []AuditStatus {
	out := make([]AuditStatus, len(declarations))
	for i, decl := range declarations {
		out[i] = e.Audit(decl)
	}
	return out
}

// Audit classifies a single declaration: SAFE for permissive, WARN for any
// copyleft or proprietary category, UNKNOWN when classification failed.
func (e *Engine) Audit(decl spdx.Declaration) AuditStatus {
	switch e.ClassifyDeclaration(decl) {
	case Permissive:
		return StatusSafe
	case WeakCopyleft, StrongCopyleft, NetworkCopyleft, Proprietary:
		return StatusWarn
	default:
		return StatusUnknown
	}
}

// ResolveConflict evaluates both directions of a pair. A conflict exists
// when either direction is incompatible: a one-way failure already blocks
// one of the two integration paths.
func (e *Engine) ResolveConflict(a, b spdx.Declaration) Conflict {
	forward := e.Evaluate(a, b)
	backward := e.Evaluate(b, a)

	switch {
	case !forward.Compatible && !backward.Compatible:
		return Conflict{
			HasConflict: true,
			Reason:      fmt.Sprintf("%s; conversely, %s", forward.Reason, backward.Reason),
		}
	case !forward.Compatible:
		return Conflict{HasConflict: true, Reason: forward.Reason}
	case !backward.Compatible:
		return Conflict{HasConflict: true, Reason: backward.Reason}
	default:
		return Conflict{HasConflict: false}
	}
}

func leafID(decl spdx.Declaration) string {
	if decl.Kind == spdx.KindExpression {
		return decl.Expr.ID
	}
	return decl.ID
}

func declFromExpr(expr *spdx.Expression, raw string) spdx.Declaration {
	if expr.IsLeaf() {
		return spdx.Identifier(expr.ID, raw)
	}
	return spdx.Declaration{Kind: spdx.KindExpression, Expr: expr, Raw: raw}
}

// overrideKey canonicalizes a directional pair for override lookup.
// "-only" suffixes alias to their base form so GPL-2.0-only matches
// GPL-2.0 entries; "-or-later" variants deliberately do not, since the
// upgrade path changes the verdict.
func overrideKey(consumer, dependency string) string {
	return overrideID(consumer) + "\x00" + overrideID(dependency)
}

func overrideID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.TrimSuffix(id, "-only")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
