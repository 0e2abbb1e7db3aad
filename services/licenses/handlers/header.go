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
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// commentPrefixes maps source languages to their line-comment markers.
// Anything unlisted gets the C-family default.
var commentPrefixes = map[string]string{
	"go":         "//",
	"c":          "//",
	"cpp":        "//",
	"java":       "//",
	"javascript": "//",
	"typescript": "//",
	"rust":       "//",
	"python":     "#",
	"ruby":       "#",
	"shell":      "#",
	"yaml":       "#",
	"lua":        "--",
	"sql":        "--",
	"html":       "<!--",
}

// HandleHeader serves POST /v1/generate-header: a ready-to-paste license
// header comment. Generation is deterministic; the license must exist in
// the registry so headers never cite an invalid identifier.
func HandleHeader(registry *spdx.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleHeader")
		defer span.End()

		var req datatypes.HeaderRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the header request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		rec, err := registry.Lookup(req.License)
		if err != nil {
			if errors.Is(err, spdx.ErrUnknownLicense) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown license: " + req.License})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registry lookup failed"})
			return
		}

		year := req.Year
		if year == 0 {
			year = time.Now().Year()
		}
		holder := req.Holder
		if holder == "" {
			holder = "The Authors"
		}

		lang := strings.ToLower(req.Language)
		prefix, ok := commentPrefixes[lang]
		if !ok {
			prefix = "//"
		}

		lines := []string{
			fmt.Sprintf("Copyright (c) %d %s", year, holder),
			"",
			fmt.Sprintf("SPDX-License-Identifier: %s", rec.LicenseID),
		}
		var b strings.Builder
		if prefix == "<!--" {
			b.WriteString("<!--\n")
			for _, line := range lines {
				b.WriteString("  " + line + "\n")
			}
			b.WriteString("-->")
		} else {
			for i, line := range lines {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(strings.TrimRight(prefix+" "+line, " "))
			}
		}

		observability.DefaultMetrics.RecordRequest("header", true)
		c.JSON(http.StatusOK, datatypes.HeaderResponse{
			License: rec.LicenseID,
			Header:  b.String(),
		})
	}
}
