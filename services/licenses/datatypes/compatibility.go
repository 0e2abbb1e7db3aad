// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// CompatibilityRequest asks whether a dependency license may be used by a
// project under the consumer license. The check is directional.
type CompatibilityRequest struct {
	ProjectLicense    string `json:"project_license" binding:"required"`
	DependencyLicense string `json:"dependency_license" binding:"required"`
}

type CompatibilityResponse struct {
	ProjectLicense    string `json:"project_license"`
	DependencyLicense string `json:"dependency_license"`
	Compatible        bool   `json:"compatible"`
	Reason            string `json:"reason"`
}

// ConflictResolutionRequest asks whether two licenses can coexist in one
// codebase, and optionally for suggested ways out when they cannot.
type ConflictResolutionRequest struct {
	LicenseA       string `json:"license_a" binding:"required"`
	LicenseB       string `json:"license_b" binding:"required"`
	SuggestOptions bool   `json:"suggest_options,omitempty"`
}

type ConflictResolutionResponse struct {
	LicenseA    string   `json:"license_a"`
	LicenseB    string   `json:"license_b"`
	HasConflict bool     `json:"has_conflict"`
	Reason      string   `json:"reason"`
	Suggestions []string `json:"suggestions,omitempty"`
}
