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
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// HandleCompatibility serves POST /v1/compatibility-check. The check is
// directional: may a project under project_license take on a dependency
// under dependency_license.
func HandleCompatibility(engine *compat.Engine, norm *spdx.Normalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleCompatibility")
		defer span.End()

		var req datatypes.CompatibilityRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the compatibility request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		verdict := engine.Evaluate(
			norm.NormalizeString(req.ProjectLicense),
			norm.NormalizeString(req.DependencyLicense),
		)

		observability.DefaultMetrics.RecordRequest("compatibility", true)
		c.JSON(http.StatusOK, datatypes.CompatibilityResponse{
			ProjectLicense:    req.ProjectLicense,
			DependencyLicense: req.DependencyLicense,
			Compatible:        verdict.Compatible,
			Reason:            verdict.Reason,
		})
	}
}
