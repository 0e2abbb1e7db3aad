// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
	"github.com/AleutianAI/osli/services/llm"
)

const defaultDiscoveryLimit = 5

// modelCandidate is the shape the discovery prompts ask the model for.
type modelCandidate struct {
	LicenseID string `json:"license_id"`
	Rationale string `json:"rationale"`
}

// HandleSearch serves POST /v1/search: natural-language license
// discovery. Model output is advisory; every candidate is verified against
// the registry and unverifiable identifiers are dropped, so the endpoint
// never reports a license that does not exist.
func HandleSearch(registry *spdx.Registry, engine *compat.Engine, llmClient llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleSearch")
		defer span.End()

		if llmClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no generative backend configured"})
			return
		}

		var req datatypes.SearchRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the search request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		limit := req.Limit
		if limit == 0 {
			limit = defaultDiscoveryLimit
		}

		prompt := fmt.Sprintf(`Suggest up to %d SPDX license identifiers matching this requirement: %q.
Use exact SPDX identifiers (e.g. "Apache-2.0", not "Apache"). Respond with JSON only:
{"results": [{"license_id": "...", "rationale": "..."}]}`, limit, req.Query)

		results, err := verifiedCandidates(ctx, llmClient, registry, engine, prompt, limit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("License search failed", "error", err)
			observability.DefaultMetrics.RecordLLMCall("search", false)
			observability.DefaultMetrics.RecordRequest("search", false)
			c.JSON(http.StatusBadGateway, gin.H{"error": "license search unavailable"})
			return
		}

		observability.DefaultMetrics.RecordLLMCall("search", true)
		observability.DefaultMetrics.RecordRequest("search", true)
		c.JSON(http.StatusOK, datatypes.SearchResponse{Query: req.Query, Results: results})
	}
}

// HandleAlternatives serves POST /v1/alternatives: licenses similar
// to a given one, optionally constrained to a category.
func HandleAlternatives(registry *spdx.Registry, engine *compat.Engine, llmClient llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAlternatives")
		defer span.End()

		if llmClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no generative backend configured"})
			return
		}

		var req datatypes.AlternativesRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the alternatives request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		limit := req.Limit
		if limit == 0 {
			limit = defaultDiscoveryLimit
		}

		prompt := fmt.Sprintf(`Suggest up to %d SPDX license identifiers that are practical alternatives to %q.`,
			limit, req.License)
		if req.Category != "" {
			prompt += fmt.Sprintf(" Restrict suggestions to the %s category.", req.Category)
		}
		prompt += `
Use exact SPDX identifiers. Respond with JSON only:
{"results": [{"license_id": "...", "rationale": "..."}]}`

		results, err := verifiedCandidates(ctx, llmClient, registry, engine, prompt, limit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Alternatives lookup failed", "error", err)
			observability.DefaultMetrics.RecordLLMCall("alternatives", false)
			observability.DefaultMetrics.RecordRequest("alternatives", false)
			c.JSON(http.StatusBadGateway, gin.H{"error": "alternatives lookup unavailable"})
			return
		}

		// The license itself is not an alternative to itself.
		filtered := results[:0]
		for _, r := range results {
			if !strings.EqualFold(r.LicenseID, req.License) {
				filtered = append(filtered, r)
			}
		}

		observability.DefaultMetrics.RecordLLMCall("alternatives", true)
		observability.DefaultMetrics.RecordRequest("alternatives", true)
		c.JSON(http.StatusOK, datatypes.AlternativesResponse{License: req.License, Alternatives: filtered})
	}
}

// verifiedCandidates runs the discovery prompt and keeps only candidates
// that resolve in the registry.
func verifiedCandidates(ctx context.Context, llmClient llm.Client, registry *spdx.Registry,
	engine *compat.Engine, prompt string, limit int) ([]datatypes.SearchResult, error) {

	maxTokens := 1024
	out, err := llmClient.Generate(ctx, prompt, llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Results []modelCandidate `json:"results"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(out)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	results := make([]datatypes.SearchResult, 0, len(parsed.Results))
	seen := make(map[string]bool)
	for _, cand := range parsed.Results {
		rec, err := registry.Lookup(cand.LicenseID)
		if err != nil {
			slog.Debug("Dropping unverifiable model candidate", "license", cand.LicenseID)
			continue
		}
		if seen[rec.LicenseID] {
			continue
		}
		seen[rec.LicenseID] = true
		results = append(results, datatypes.SearchResult{
			LicenseID: rec.LicenseID,
			Name:      rec.Name,
			Category:  string(engine.Classify(rec.LicenseID)),
			Rationale: cand.Rationale,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
