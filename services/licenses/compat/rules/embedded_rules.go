// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
This file bridges the build system and the runtime logic. It uses the Go
embed package to bake license_rules.yaml directly into the compiled binary,
so the compatibility rules are immutable at runtime and travel with the
executable.
*/

package rules

import (
	_ "embed"
)

// LicenseRules holds the raw byte content of the 'license_rules.yaml' file.
//
// Populated at compile time via the Go 'embed' directive. Baking the YAML
// into the binary keeps the category and override tables auditable as data
// while preventing tampering on the host filesystem without a rebuild.
//
// Usage:
//
//	// Pass these bytes directly to yaml.Unmarshal
//	err := yaml.Unmarshal(rules.LicenseRules, &targetStruct)
//
//go:embed license_rules.yaml
var LicenseRules []byte
