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
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

var tracer = otel.Tracer("osli.licenses.handlers")

// GetLicense serves GET /v1/licenses/:licenseId. Lookup is case-insensitive;
// the canonical SPDX casing is returned.
func GetLicense(registry *spdx.Registry, engine *compat.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "GetLicense")
		defer span.End()

		id := c.Param("licenseId")
		rec, err := registry.Lookup(id)
		if err != nil {
			if errors.Is(err, spdx.ErrUnknownLicense) {
				observability.DefaultMetrics.RecordRequest("license_info", false)
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown license: " + id})
				return
			}
			slog.Error("Registry lookup failed", "license", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registry lookup failed"})
			return
		}

		observability.DefaultMetrics.RecordRequest("license_info", true)
		c.JSON(http.StatusOK, datatypes.LicenseInfoResponse{
			LicenseID:     rec.LicenseID,
			Name:          rec.Name,
			Category:      string(engine.Classify(rec.LicenseID)),
			IsOsiApproved: rec.IsOsiApproved,
			IsDeprecated:  rec.IsDeprecatedLicenseID,
			SeeAlso:       rec.SeeAlso,
		})
	}
}
