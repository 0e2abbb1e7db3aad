// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spdx

import "errors"

// Sentinel errors for the spdx package.
var (
	// ErrDatasetUnavailable indicates the SPDX dataset file is missing or malformed.
	// This is fatal at startup; the service must not serve traffic without a registry.
	ErrDatasetUnavailable = errors.New("spdx dataset unavailable")

	// ErrUnknownLicense indicates a direct lookup for an identifier the registry
	// does not contain. Normalization never returns this; it degrades to an
	// unresolved declaration instead.
	ErrUnknownLicense = errors.New("unknown license identifier")
)
