// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	jsonOutput      bool   // Output raw JSON for scripting
	projectLicense  string // Project license for audit tightening
	suggestOptions  bool   // Ask for resolution suggestions on conflicts
	analyzeContext  string // Usage context for license analysis
	headerYear      int
	headerHolder    string
	headerLanguage  string
	searchLimit     int
	altCategory     string

	rootCmd = &cobra.Command{
		Use:   "osli",
		Short: "A cli for the OSLI open source license intelligence service",
		Long: `osli talks to a running licenses service to answer license
questions: registry lookups, compatibility verdicts, dependency audits,
and conflict resolution.`,
	}

	// --- Registry ---
	licenseCmd = &cobra.Command{
		Use:   "license",
		Short: "Inspect individual licenses",
	}
	licenseInfoCmd = &cobra.Command{
		Use:   "info [spdx-id]",
		Short: "Show registry metadata and the category for a license",
		Args:  cobra.ExactArgs(1),
		Run:   runLicenseInfo, // Defined in cmd_license.go
	}
	licenseAnalyzeCmd = &cobra.Command{
		Use:   "analyze [license]",
		Short: "Explain the practical obligations of a license",
		Args:  cobra.ExactArgs(1),
		Run:   runLicenseAnalyze, // Defined in cmd_license.go
	}
	licenseHeaderCmd = &cobra.Command{
		Use:   "header [spdx-id]",
		Short: "Generate a ready-to-paste license header comment",
		Args:  cobra.ExactArgs(1),
		Run:   runLicenseHeader, // Defined in cmd_license.go
	}
	licenseSearchCmd = &cobra.Command{
		Use:   "search [query]",
		Short: "Find licenses matching a natural-language requirement",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLicenseSearch, // Defined in cmd_license.go
	}
	licenseAlternativesCmd = &cobra.Command{
		Use:   "alternatives [spdx-id]",
		Short: "Suggest licenses similar to the given one",
		Args:  cobra.ExactArgs(1),
		Run:   runLicenseAlternatives, // Defined in cmd_license.go
	}

	// --- Compatibility ---
	checkCmd = &cobra.Command{
		Use:   "check [project-license] [dependency-license]",
		Short: "Check whether a dependency license fits under a project license",
		Args:  cobra.ExactArgs(2),
		Run:   runCheck, // Defined in cmd_check.go
	}
	conflictCmd = &cobra.Command{
		Use:   "conflict [license-a] [license-b]",
		Short: "Check whether two licenses can coexist in one codebase",
		Args:  cobra.ExactArgs(2),
		Run:   runConflict, // Defined in cmd_check.go
	}

	// --- Audit ---
	auditCmd = &cobra.Command{
		Use:   "audit [package.json]",
		Short: "Audit the dependencies of a package.json manifest",
		Args:  cobra.ExactArgs(1),
		Run:   runAudit, // Defined in cmd_audit.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output raw JSON for scripting")

	licenseAnalyzeCmd.Flags().StringVar(&analyzeContext, "context", "",
		"Usage context, e.g. 'SaaS backend' or 'embedded firmware'")
	licenseHeaderCmd.Flags().IntVar(&headerYear, "year", 0,
		"Copyright year (default: current year)")
	licenseHeaderCmd.Flags().StringVar(&headerHolder, "holder", "",
		"Copyright holder (default: 'The Authors')")
	licenseHeaderCmd.Flags().StringVar(&headerLanguage, "lang", "go",
		"Source language for the comment style")
	licenseSearchCmd.Flags().IntVar(&searchLimit, "limit", 0,
		"Maximum number of results")
	licenseAlternativesCmd.Flags().StringVar(&altCategory, "category", "",
		"Restrict alternatives to a category, e.g. permissive")
	conflictCmd.Flags().BoolVar(&suggestOptions, "suggest", false,
		"Ask the model for practical resolution options")
	auditCmd.Flags().StringVar(&projectLicense, "project-license", "",
		"Tighten the audit against this project license")

	licenseCmd.AddCommand(licenseInfoCmd, licenseAnalyzeCmd, licenseHeaderCmd,
		licenseSearchCmd, licenseAlternativesCmd)
	rootCmd.AddCommand(licenseCmd, checkCmd, conflictCmd, auditCmd)
}
