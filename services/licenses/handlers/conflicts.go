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

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
	"github.com/AleutianAI/osli/services/llm"
)

// HandleConflictResolution serves POST /v1/resolve-conflicts. The verdict is
// deterministic; suggestions are the only generative part and are skipped
// when no backend is configured or the model call fails.
func HandleConflictResolution(engine *compat.Engine, norm *spdx.Normalizer, llmClient llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleConflictResolution")
		defer span.End()

		var req datatypes.ConflictResolutionRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the conflict request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		conflict := engine.ResolveConflict(
			norm.NormalizeString(req.LicenseA),
			norm.NormalizeString(req.LicenseB),
		)

		resp := datatypes.ConflictResolutionResponse{
			LicenseA:    req.LicenseA,
			LicenseB:    req.LicenseB,
			HasConflict: conflict.HasConflict,
			Reason:      conflict.Reason,
		}

		if conflict.HasConflict && req.SuggestOptions && llmClient != nil {
			suggestions, err := suggestResolutions(ctx, llmClient, req.LicenseA, req.LicenseB, conflict.Reason)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				slog.Warn("Conflict suggestions unavailable", "error", err)
				observability.DefaultMetrics.RecordLLMCall("conflicts", false)
			} else {
				observability.DefaultMetrics.RecordLLMCall("conflicts", true)
				resp.Suggestions = suggestions
			}
		}

		observability.DefaultMetrics.RecordRequest("conflicts", true)
		c.JSON(http.StatusOK, resp)
	}
}

func suggestResolutions(ctx context.Context, llmClient llm.Client, a, b, reason string) ([]string, error) {
	prompt := fmt.Sprintf(`Two licenses conflict in the same codebase.
License A: %s
License B: %s
Conflict: %s

List up to 4 practical ways a team could resolve this, such as replacing a dependency, isolating it behind a service boundary, or seeking a commercial license. Respond with JSON only:
{"suggestions": ["..."]}`, a, b, reason)

	maxTokens := 512
	out, err := llmClient.Generate(ctx, prompt, llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(out)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	if len(parsed.Suggestions) > 4 {
		parsed.Suggestions = parsed.Suggestions[:4]
	}
	return parsed.Suggestions, nil
}
