// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides request and response structures for the
// licenses service.
//
// This file contains types for the license registry endpoints. For the
// compatibility and audit types, see compatibility.go and audit.go.
package datatypes

// LicenseInfoResponse is returned by GET /v1/licenses/:licenseId.
type LicenseInfoResponse struct {
	LicenseID     string   `json:"license_id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	IsOsiApproved bool     `json:"is_osi_approved"`
	IsDeprecated  bool     `json:"is_deprecated"`
	SeeAlso       []string `json:"see_also,omitempty"`
}

// AnalyzeRequest asks for a plain-language risk analysis of a single
// license in an optional usage context.
type AnalyzeRequest struct {
	License string `json:"license" binding:"required"`
	Context string `json:"context,omitempty"`
}

type AnalyzeResponse struct {
	License  string `json:"license"`
	Category string `json:"category"`
	Analysis string `json:"analysis"`
}

// HeaderRequest asks for a ready-to-paste license header comment.
type HeaderRequest struct {
	License  string `json:"license" binding:"required"`
	Year     int    `json:"year,omitempty"`
	Holder   string `json:"holder,omitempty"`
	Language string `json:"language,omitempty"`
}

type HeaderResponse struct {
	License string `json:"license"`
	Header  string `json:"header"`
}
