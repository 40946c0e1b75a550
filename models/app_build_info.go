// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable replaces build metadata that was not injected at link time.
const notAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata injected by linker
// flags. Both binaries print it on start or on request.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values become "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// HasVersion reports whether a version was injected.
func (a AppBuildInfo) HasVersion() bool {
	return a.buildVersion != notAvailable
}

// String renders the three lines printed by the binaries.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", a.buildVersion, a.buildDate, a.buildCommit)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
