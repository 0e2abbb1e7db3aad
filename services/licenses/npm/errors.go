// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package npm

import "errors"

// Sentinel errors for the npm package.
var (
	// ErrPackageNotFound indicates the registry has no package by that name.
	ErrPackageNotFound = errors.New("package not found")

	// ErrRegistryUnavailable indicates the registry could not be reached or
	// returned an unexpected response.
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
