// ============================================================================
// meinDENKWERK (mDW) - dateutil
// ============================================================================
//
// Package:     version
// Description: Central version management for the dateutil binary and service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Library version of foundation/utils/datex
	Library = "1.0.0"

	// Service version of the gRPC API
	Service = "1.0.0"

	// API is the gRPC package served
	API = "mdw.dateutil.v1"
)

// Set at build time via -ldflags "-X github.com/msto63/mdw-dateutil/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running build
type Info struct {
	Library   string `json:"library"`
	Service   string `json:"service"`
	API       string `json:"api"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information of this build
func Get() Info {
	return Info{
		Library:   Library,
		Service:   Service,
		API:       API,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "datex", "library":
		return Library
	case "service", "server":
		return Service
	default:
		return Library
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("dateutil %s (api %s %s, commit %s, built %s, %s %s)",
		i.Library, i.API, i.Service, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
