// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AppBuildInfo carries immutable build-time metadata embedded into the
// server binary. Values are injected by linker flags and reported by the
// ops /version endpoint.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// AppInfo is the body of the ops /version response.
type AppInfo struct {
	Version   string        `json:"version"`
	BuildDate string        `json:"build_date,omitempty"`
	Commit    string        `json:"commit,omitempty"`
	Driver    string        `json:"driver"`
	Uptime    time.Duration `json:"uptime_ns"`
}
