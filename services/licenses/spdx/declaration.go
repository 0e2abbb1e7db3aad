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

import (
	"encoding/json"
	"strings"
)

// DeclarationKind tags the variant held by a Declaration.
type DeclarationKind string

const (
	// KindIdentifier means the declaration resolved to a single SPDX identifier.
	KindIdentifier DeclarationKind = "identifier"

	// KindExpression means the declaration resolved to a boolean SPDX
	// expression (dual licensing or multi-license terms).
	KindExpression DeclarationKind = "expression"

	// KindUnresolved means the raw text could not be mapped to known SPDX
	// identifiers. The raw text is preserved for display.
	KindUnresolved DeclarationKind = "unresolved"
)

// Declaration is the canonical, machine-comparable form of a license field.
//
// Exactly one of ID or Expr is populated for resolved declarations. Raw always
// preserves the original text so unresolved inputs still render informatively.
type Declaration struct {
	Kind DeclarationKind
	ID   string
	Expr *Expression
	Raw  string
}

// Unresolved builds an unresolved declaration preserving raw for display.
func Unresolved(raw string) Declaration {
	return Declaration{Kind: KindUnresolved, Raw: raw}
}

// Identifier builds a resolved single-identifier declaration.
func Identifier(id, raw string) Declaration {
	return Declaration{Kind: KindIdentifier, ID: id, Raw: raw}
}

// String renders the canonical form, falling back to the raw text for
// unresolved declarations. Empty raw renders as "(none)".
func (d Declaration) String() string {
	switch d.Kind {
	case KindIdentifier:
		return d.ID
	case KindExpression:
		return d.Expr.String()
	default:
		if strings.TrimSpace(d.Raw) == "" {
			return "(none)"
		}
		return d.Raw
	}
}

// RawLicenseKind tags the shape of a registry-returned license field.
type RawLicenseKind string

const (
	// RawNone means the field was absent or null.
	RawNone RawLicenseKind = "none"

	// RawString is the modern shape: "MIT" or an SPDX expression string.
	RawString RawLicenseKind = "string"

	// RawObject is the legacy single-object shape: {"type": "MIT", "url": ...}.
	RawObject RawLicenseKind = "object"

	// RawList is the legacy array shape, usually dual licensing:
	// [{"type": "MIT"}, {"type": "Apache-2.0"}] or ["MIT", "Apache-2.0"].
	RawList RawLicenseKind = "list"
)

// RawLicense is the closed set of shapes the package registry returns for a
// license field. Decoding happens once, at the trust boundary, so the
// normalizer can switch exhaustively on Kind instead of probing types.
type RawLicense struct {
	Kind    RawLicenseKind
	Value   string
	Entries []string
}

type legacyLicenseObject struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// UnmarshalJSON decodes any of the registry's license field shapes.
//
// Unrecognized shapes decode to RawNone rather than failing: the registry is
// untrusted input and normalization must stay total.
func (r *RawLicense) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*r = RawLicense{Kind: RawNone}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = RawLicense{Kind: RawNone}
			return nil
		}
		*r = RawLicense{Kind: RawString, Value: s}
	case '{':
		var obj legacyLicenseObject
		if err := json.Unmarshal(data, &obj); err != nil {
			*r = RawLicense{Kind: RawNone}
			return nil
		}
		*r = RawLicense{Kind: RawObject, Value: obj.Type}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			*r = RawLicense{Kind: RawNone}
			return nil
		}
		entries := make([]string, 0, len(items))
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				entries = append(entries, s)
				continue
			}
			var obj legacyLicenseObject
			if err := json.Unmarshal(item, &obj); err == nil && obj.Type != "" {
				entries = append(entries, obj.Type)
			}
		}
		*r = RawLicense{Kind: RawList, Entries: entries}
	default:
		*r = RawLicense{Kind: RawNone}
	}
	return nil
}

// RawFromString wraps a plain string declaration, e.g. user-supplied license
// ids on the compatibility endpoint.
func RawFromString(s string) RawLicense {
	if strings.TrimSpace(s) == "" {
		return RawLicense{Kind: RawNone}
	}
	return RawLicense{Kind: RawString, Value: s}
}
