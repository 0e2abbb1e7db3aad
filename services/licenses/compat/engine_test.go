// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package compat

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/osli/services/licenses/spdx"
)

func newTestEngine(t *testing.T) (*Engine, *spdx.Normalizer) {
	t.Helper()
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("Failed to initialize engine: %v", err)
	}
	reg, err := spdx.Load(filepath.Join("..", "spdx", "testdata", "licenses.json"))
	if err != nil {
		t.Fatalf("Failed to load fixture registry: %v", err)
	}
	return engine, spdx.NewNormalizer(reg)
}

func TestClassify(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		name       string
		identifier string
		expected   Category
	}{
		{"MIT exact", "MIT", Permissive},
		{"Apache exact", "Apache-2.0", Permissive},
		{"case insensitive", "mit", Permissive},
		{"LGPL exact", "LGPL-2.1", WeakCopyleft},
		{"MPL exact", "MPL-2.0", WeakCopyleft},
		{"GPL exact", "GPL-3.0", StrongCopyleft},
		{"AGPL exact", "AGPL-3.0", NetworkCopyleft},
		{"SSPL exact", "SSPL-1.0", NetworkCopyleft},
		{"npm UNLICENSED convention", "UNLICENSED", Proprietary},
		{"GPL family suffix", "GPL-3.0-or-later", StrongCopyleft},
		{"LGPL before GPL prefix", "LGPL-2.1-or-later", WeakCopyleft},
		{"AGPL before GPL prefix", "AGPL-3.0-or-later", NetworkCopyleft},
		{"BSD family", "BSD-4-Clause", Permissive},
		{"or-later plus marker", "GPL-2.0+", StrongCopyleft},
		{"exception rider ignored", "Apache-2.0 WITH LLVM-exception", Permissive},
		{"unknown identifier", "Totally-Custom-1.0", Unknown},
		{"empty string", "", Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Classify(tc.identifier); got != tc.expected {
				t.Errorf("Classify(%q) = %q, want %q", tc.identifier, got, tc.expected)
			}
		})
	}
}

func TestEvaluate_CategoryDominance(t *testing.T) {
	engine, norm := newTestEngine(t)

	tests := []struct {
		name       string
		consumer   string
		dependency string
		compatible bool
	}{
		{"permissive dep under permissive consumer", "MIT", "ISC", true},
		{"permissive dep under strong consumer", "GPL-3.0-only", "MIT", true},
		{"permissive dep under network consumer", "AGPL-3.0-only", "BSD-2-Clause", true},
		{"weak dep is cautionary but compatible", "MIT", "LGPL-2.1", true},
		{"strong dep under permissive consumer fails", "ISC", "GPL-3.0-only", false},
		{"strong dep under strong consumer", "GPL-3.0-only", "GPL-3.0-only", true},
		{"strong dep under network consumer", "AGPL-3.0-only", "GPL-3.0-only", true},
		{"network dep under permissive consumer fails", "MIT", "SSPL-1.0", false},
		{"network dep under weak consumer fails", "MPL-2.0", "SSPL-1.0", false},
		{"network dep under network consumer", "AGPL-3.0-only", "AGPL-3.0-only", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := engine.Evaluate(norm.NormalizeString(tc.consumer), norm.NormalizeString(tc.dependency))
			if verdict.Compatible != tc.compatible {
				t.Errorf("Evaluate(%s, %s).Compatible = %v, want %v (reason: %s)",
					tc.consumer, tc.dependency, verdict.Compatible, tc.compatible, verdict.Reason)
			}
			if verdict.Reason == "" {
				t.Error("Reason must always be populated")
			}
		})
	}
}

func TestEvaluate_Overrides(t *testing.T) {
	engine, norm := newTestEngine(t)

	tests := []struct {
		name       string
		consumer   string
		dependency string
		compatible bool
	}{
		// The curated matrix lets permissive projects adopt copyleft deps
		// by distributing the combined work under the copyleft terms.
		{"MIT project may take a GPL-3.0 dep", "MIT", "GPL-3.0", true},
		{"MIT project may take an AGPL-3.0 dep", "MIT", "AGPL-3.0", true},
		{"Apache project may take a GPL-3.0 dep", "Apache-2.0", "GPL-3.0", true},
		// GPL version incompatibility beats same-category dominance.
		{"GPL-2.0 vs GPL-3.0", "GPL-2.0", "GPL-3.0", false},
		{"GPL-3.0 vs GPL-2.0", "GPL-3.0", "GPL-2.0", false},
		{"only suffix aliases to base", "GPL-2.0-only", "GPL-3.0-only", false},
		{"GPL-2.0 vs Apache-2.0", "GPL-2.0", "Apache-2.0", false},
		{"AGPL-3.0 vs GPL-2.0", "AGPL-3.0-only", "GPL-2.0", false},
		// Or-later keeps the upgrade path and must not alias onto the
		// version-incompatibility entries.
		{"or-later escapes version pin", "GPL-3.0-only", "GPL-2.0-or-later", true},
		{"MPL secondary license provision", "MPL-2.0", "GPL-3.0", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := engine.Evaluate(norm.NormalizeString(tc.consumer), norm.NormalizeString(tc.dependency))
			if verdict.Compatible != tc.compatible {
				t.Errorf("Evaluate(%s, %s).Compatible = %v, want %v (reason: %s)",
					tc.consumer, tc.dependency, verdict.Compatible, tc.compatible, verdict.Reason)
			}
		})
	}
}

func TestEvaluate_DirectionalAsymmetry(t *testing.T) {
	engine, norm := newTestEngine(t)

	forward := engine.Evaluate(norm.NormalizeString("GPL-3.0-only"), norm.NormalizeString("ISC"))
	backward := engine.Evaluate(norm.NormalizeString("ISC"), norm.NormalizeString("GPL-3.0-only"))

	if !forward.Compatible {
		t.Errorf("copyleft consumer with permissive dep should be compatible: %s", forward.Reason)
	}
	if backward.Compatible {
		t.Errorf("permissive consumer with copyleft dep should not be compatible: %s", backward.Reason)
	}
}

func TestEvaluate_Unresolved(t *testing.T) {
	engine, norm := newTestEngine(t)

	unresolved := norm.NormalizeString("SEE LICENSE IN LICENSE.txt")
	mit := norm.NormalizeString("MIT")

	for name, pair := range map[string][2]spdx.Declaration{
		"unresolved dependency": {mit, unresolved},
		"unresolved consumer":   {unresolved, mit},
	} {
		t.Run(name, func(t *testing.T) {
			verdict := engine.Evaluate(pair[0], pair[1])
			if verdict.Compatible {
				t.Error("unresolved licenses must fail closed")
			}
			if !strings.Contains(verdict.Reason, "could not be verified") {
				t.Errorf("reason should cite verification failure, got %q", verdict.Reason)
			}
		})
	}
}

func TestEvaluate_DualLicense(t *testing.T) {
	engine, norm := newTestEngine(t)

	dual := norm.NormalizeString("MIT OR SSPL-1.0")
	verdict := engine.Evaluate(norm.NormalizeString("ISC"), dual)
	if !verdict.Compatible {
		t.Fatalf("dual license with a permissive branch must be compatible: %s", verdict.Reason)
	}
	if !strings.Contains(verdict.Reason, "MIT") {
		t.Errorf("reason should name the chosen branch, got %q", verdict.Reason)
	}

	// Both branches restrictive for a permissive consumer.
	blocked := engine.Evaluate(norm.NormalizeString("ISC"), norm.NormalizeString("SSPL-1.0 OR AGPL-3.0-only"))
	if blocked.Compatible {
		t.Errorf("no acceptable branch should mean incompatible: %s", blocked.Reason)
	}
}

func TestEvaluate_ConjunctionDependency(t *testing.T) {
	engine, norm := newTestEngine(t)

	// All terms apply: one bad conjunct poisons the whole dependency.
	verdict := engine.Evaluate(norm.NormalizeString("MIT"), norm.NormalizeString("ISC AND SSPL-1.0"))
	if verdict.Compatible {
		t.Errorf("AND with an incompatible term must fail: %s", verdict.Reason)
	}

	ok := engine.Evaluate(norm.NormalizeString("MIT"), norm.NormalizeString("ISC AND BSD-2-Clause"))
	if !ok.Compatible {
		t.Errorf("AND of permissive terms must pass: %s", ok.Reason)
	}
}

func TestAuditBatch(t *testing.T) {
	engine, norm := newTestEngine(t)

	decls := []spdx.Declaration{
		norm.NormalizeString("MIT"),
		norm.NormalizeString("MIT"),
		norm.NormalizeString("LGPL-2.1"),
		norm.NormalizeString("GPL-3.0-only"),
		norm.NormalizeString("UNLICENSED"),
		norm.NormalizeString("SEE LICENSE IN LICENSE.txt"),
		norm.NormalizeString("MIT OR GPL-3.0-only"),
		norm.NormalizeString("MIT AND GPL-3.0-only"),
	}
	expected := []AuditStatus{
		StatusSafe,
		StatusSafe,
		StatusWarn,
		StatusWarn,
		StatusWarn,
		StatusUnknown,
		StatusSafe, // OR takes the most permissive branch
		StatusWarn, // AND is bound by the most restrictive term
	}

	got := engine.AuditBatch(decls)
	if len(got) != len(expected) {
		t.Fatalf("AuditBatch returned %d results, want %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("entry %d (%s): got %s, want %s", i, decls[i].String(), got[i], expected[i])
		}
	}
}

func TestResolveConflict(t *testing.T) {
	engine, norm := newTestEngine(t)

	tests := []struct {
		name        string
		a, b        string
		hasConflict bool
	}{
		{"permissive pair", "MIT", "Apache-2.0", false},
		{"MIT and SSPL conflict", "MIT", "SSPL-1.0", true},
		{"GPL version conflict", "GPL-2.0", "GPL-3.0", true},
		{"MIT and GPL-3.0 coexist via matrix", "MIT", "GPL-3.0", false},
		{"unresolved always conflicts", "MIT", "SEE LICENSE IN LICENSE.txt", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conflict := engine.ResolveConflict(norm.NormalizeString(tc.a), norm.NormalizeString(tc.b))
			if conflict.HasConflict != tc.hasConflict {
				t.Errorf("ResolveConflict(%s, %s) = %v, want %v (reason: %s)",
					tc.a, tc.b, conflict.HasConflict, tc.hasConflict, conflict.Reason)
			}
			if conflict.HasConflict && conflict.Reason == "" {
				t.Error("conflicts must carry a reason")
			}
		})
	}
}
