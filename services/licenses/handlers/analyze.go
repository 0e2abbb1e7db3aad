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

// categorySummaries are the deterministic fallback when no generative
// backend is configured. One sentence per category, no legal advice.
var categorySummaries = map[compat.Category]string{
	compat.Permissive:      "Permissive license: use, modify, and redistribute with attribution; derivative works may stay closed.",
	compat.WeakCopyleft:    "Weak copyleft: modifications to the licensed files must be shared, but the surrounding work may stay under its own license.",
	compat.StrongCopyleft:  "Strong copyleft: distributing a combined work requires releasing the whole work under the same terms.",
	compat.NetworkCopyleft: "Network copyleft: offering the software over a network counts as distribution and triggers source obligations.",
	compat.Proprietary:     "Proprietary terms: no open-source rights are granted; usage requires a separate agreement.",
	compat.Unknown:         "Unrecognized license: obligations cannot be determined automatically and need manual review.",
}

// HandleAnalyze serves POST /v1/analyze. Classification is
// deterministic; the narrative comes from the model when one is configured
// and falls back to a canned category summary otherwise.
func HandleAnalyze(engine *compat.Engine, norm *spdx.Normalizer, llmClient llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAnalyze")
		defer span.End()

		var req datatypes.AnalyzeRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the analyze request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		decl := norm.NormalizeString(req.License)
		category := engine.ClassifyDeclaration(decl)

		analysis := categorySummaries[category]
		if llmClient != nil {
			prompt := fmt.Sprintf(`Explain the practical obligations of the license %q (category: %s) in 3-5 sentences for a software team.`,
				decl.String(), category)
			if req.Context != "" {
				prompt += fmt.Sprintf(" Usage context: %s.", req.Context)
			}
			prompt += " Do not give legal advice; describe obligations and common pitfalls."

			maxTokens := 512
			out, err := llmClient.Generate(ctx, prompt, llm.GenerationParams{MaxTokens: &maxTokens})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				slog.Warn("Analysis narrative unavailable, using category summary", "error", err)
				observability.DefaultMetrics.RecordLLMCall("analyze", false)
			} else if text := strings.TrimSpace(out); text != "" {
				observability.DefaultMetrics.RecordLLMCall("analyze", true)
				analysis = text
			}
		}

		observability.DefaultMetrics.RecordRequest("analyze", true)
		c.JSON(http.StatusOK, datatypes.AnalyzeResponse{
			License:  decl.String(),
			Category: string(category),
			Analysis: analysis,
		})
	}
}
