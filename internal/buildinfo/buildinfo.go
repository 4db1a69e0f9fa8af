// Package buildinfo exposes link-time build metadata.
//
// Values are set with -ldflags, for example:
//
//	go build -ldflags "-X github.com/elducche/mddcli/internal/buildinfo.buildVersion=v1.2.0" ./cmd/client
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
