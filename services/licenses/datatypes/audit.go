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

// MaxAuditDependencies bounds a single audit request. Larger manifests
// should be split client-side; each entry costs a registry round trip.
const MaxAuditDependencies = 200

// AuditRequest carries the dependency map of a package.json manifest
// (name -> semver range). The values are ignored; only names are resolved
// against the registry.
type AuditRequest struct {
	ProjectLicense string            `json:"project_license,omitempty"`
	Dependencies   map[string]string `json:"dependencies" binding:"required"`
}

// AuditItem is the per-dependency verdict within an audit report.
type AuditItem struct {
	Package string `json:"package"`
	License string `json:"license"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

type AuditSummary struct {
	Safe    int `json:"safe"`
	Warn    int `json:"warn"`
	Unknown int `json:"unknown"`
}

type AuditResponse struct {
	ProjectLicense string       `json:"project_license,omitempty"`
	Items          []AuditItem  `json:"items"`
	Summary        AuditSummary `json:"summary"`
}
