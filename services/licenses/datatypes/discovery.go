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

// SearchRequest is a natural-language query over licensing requirements,
// e.g. "permissive license that includes a patent grant".
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty" binding:"omitempty,gte=1,lte=20"`
}

// SearchResult pairs a candidate license with the model's rationale. Only
// identifiers verified against the registry are returned.
type SearchResult struct {
	LicenseID string `json:"license_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Rationale string `json:"rationale,omitempty"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// AlternativesRequest asks for licenses similar to the given one,
// optionally constrained to a target category.
type AlternativesRequest struct {
	License  string `json:"license" binding:"required"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty" binding:"omitempty,gte=1,lte=20"`
}

type AlternativesResponse struct {
	License      string         `json:"license"`
	Alternatives []SearchResult `json:"alternatives"`
}
