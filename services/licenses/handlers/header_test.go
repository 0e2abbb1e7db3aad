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
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
)

func headerRouter(t *testing.T) *gin.Engine {
	deps := newTestDeps(t)
	router := gin.New()
	router.POST("/v1/generate-header", HandleHeader(deps.registry))
	return router
}

func TestHandleHeader_GoStyle(t *testing.T) {
	router := headerRouter(t)

	var resp datatypes.HeaderResponse
	w := doJSON(t, router, "POST", "/v1/generate-header", datatypes.HeaderRequest{
		License:  "mit",
		Year:     2024,
		Holder:   "Example Corp",
		Language: "go",
	}, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MIT", resp.License)
	assert.Contains(t, resp.Header, "// Copyright (c) 2024 Example Corp")
	assert.Contains(t, resp.Header, "// SPDX-License-Identifier: MIT")
}

func TestHandleHeader_PythonStyle(t *testing.T) {
	router := headerRouter(t)

	var resp datatypes.HeaderResponse
	doJSON(t, router, "POST", "/v1/generate-header", datatypes.HeaderRequest{
		License:  "Apache-2.0",
		Year:     2024,
		Holder:   "Example Corp",
		Language: "python",
	}, &resp)

	for _, line := range strings.Split(resp.Header, "\n") {
		if line == "#" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "# "), "line %q should use hash comments", line)
	}
}

func TestHandleHeader_HTMLBlockComment(t *testing.T) {
	router := headerRouter(t)

	var resp datatypes.HeaderResponse
	doJSON(t, router, "POST", "/v1/generate-header", datatypes.HeaderRequest{
		License:  "MIT",
		Language: "html",
	}, &resp)

	assert.True(t, strings.HasPrefix(resp.Header, "<!--"))
	assert.True(t, strings.HasSuffix(resp.Header, "-->"))
}

func TestHandleHeader_Defaults(t *testing.T) {
	router := headerRouter(t)

	var resp datatypes.HeaderResponse
	doJSON(t, router, "POST", "/v1/generate-header", datatypes.HeaderRequest{
		License: "ISC",
	}, &resp)

	assert.Contains(t, resp.Header, "The Authors")
	assert.Contains(t, resp.Header, "// SPDX-License-Identifier: ISC")
}

func TestHandleHeader_UnknownLicenseIs404(t *testing.T) {
	router := headerRouter(t)

	w := doJSON(t, router, "POST", "/v1/generate-header", datatypes.HeaderRequest{
		License: "Not-A-License",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
