// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rules

import (
	"crypto/sha256"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedRulesIntegrity(t *testing.T) {
	// 1. Ensure the embedded slice is not empty
	if len(LicenseRules) == 0 {
		t.Fatal("Embedded rules data is empty. Did the build fail to include 'license_rules.yaml'?")
	}

	// 2. Ensure it is valid YAML
	var dump map[string]interface{}
	if err := yaml.Unmarshal(LicenseRules, &dump); err != nil {
		t.Fatalf("Embedded data is not valid YAML: %v", err)
	}
	for _, section := range []string{"categories", "prefixes", "overrides"} {
		if _, ok := dump[section]; !ok {
			t.Errorf("Embedded rules missing %q section", section)
		}
	}

	// 3. Ensure we can calculate a fingerprint for operator verification
	hash := sha256.Sum256(LicenseRules)
	if len(hash) != 32 {
		t.Errorf("Hash calculation failed, expected 32 bytes, got %d", len(hash))
	}
}
