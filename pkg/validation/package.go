// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that end up in
// outbound registry URLs or subprocess calls. Using these validators prevents
// injection attacks (URL manipulation, path traversal).
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// npmNamePattern matches valid npm package names per the registry's naming
// rules: lowercase, URL-safe, optionally scoped (@scope/name).
// Max length: 214 characters including the scope.
var npmNamePattern = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._-]*\/)?[a-z0-9][a-z0-9._-]*$`)

// MaxPackageNameLength is the registry's documented limit.
const MaxPackageNameLength = 214

// ValidatePackageName validates an npm package name before it is used in a
// registry URL.
//
// Valid names:
//   - 1-214 characters including any scope
//   - Lowercase letters, digits, dots, hyphens, underscores
//   - Optional @scope/ prefix
//   - No leading dot or underscore in either segment
//
// Returns an error if the name is invalid.
//
// Example:
//
//	if err := validation.ValidatePackageName(name); err != nil {
//	    return nil, fmt.Errorf("invalid package: %w", err)
//	}
//	// Safe to place in a registry URL path
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if len(name) > MaxPackageNameLength {
		return fmt.Errorf("package name exceeds %d characters", MaxPackageNameLength)
	}

	if !npmNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name: %q (must be lowercase URL-safe, optionally @scope/name)", name)
	}

	return nil
}

// ValidatePackageNames validates multiple package names.
// Returns an error listing all invalid names if any fail validation.
func ValidatePackageNames(names []string) error {
	var invalid []string
	for _, n := range names {
		if err := ValidatePackageName(n); err != nil {
			invalid = append(invalid, n)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid package names: %v", invalid)
	}
	return nil
}

// SanitizePackageName normalizes and validates a package name.
// Returns the lowercase trimmed name if valid, or an error if invalid.
func SanitizePackageName(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if err := ValidatePackageName(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
