// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BuildInfo carries build-time metadata injected with linker flags.
//
// It is logged at startup and served by the version endpoint.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo replaces empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
