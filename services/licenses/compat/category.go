// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package compat

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is the compatibility category of a license. It is derived on
// demand from an identifier, never stored.
type Category string

const (
	Permissive      Category = "permissive"
	WeakCopyleft    Category = "weak_copyleft"
	StrongCopyleft  Category = "strong_copyleft"
	NetworkCopyleft Category = "network_copyleft"
	Proprietary     Category = "proprietary"
	Unknown         Category = "unknown"
)

// restrictiveness orders categories from least to most restrictive for
// expression folding: an OR picks the most permissive branch, an AND is
// bound by the most restrictive conjunct.
var restrictiveness = map[Category]int{
	Permissive:      0,
	WeakCopyleft:    1,
	StrongCopyleft:  2,
	NetworkCopyleft: 3,
	Proprietary:     4,
	Unknown:         5,
}

// UnmarshalYAML restricts rule-file categories to the known set, so a typo
// in the embedded tables fails engine construction instead of silently
// classifying everything as Unknown.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := Category(s)
	switch incoming {
	case Permissive, WeakCopyleft, StrongCopyleft, NetworkCopyleft, Proprietary:
		*c = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for Category: %q", incoming)
	}
}

// ruleFile mirrors the embedded license_rules.yaml document. Category keys
// arrive as strings and are validated in NewEngine; yaml.v3 does not run
// custom unmarshalers for map keys.
type ruleFile struct {
	Categories map[string][]string `yaml:"categories"`
	Prefixes   []prefixRule        `yaml:"prefixes"`
	Overrides  []overrideRule      `yaml:"overrides"`
}

type prefixRule struct {
	Prefix   string   `yaml:"prefix"`
	Category Category `yaml:"category"`
}

type overrideRule struct {
	Consumer   string `yaml:"consumer"`
	Dependency string `yaml:"dependency"`
	Compatible bool   `yaml:"compatible"`
	Reason     string `yaml:"reason"`
}
