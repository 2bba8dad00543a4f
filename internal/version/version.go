// Package version exposes build information injected with -ldflags.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X annals/internal/version.version=1.0.0 -X annals/internal/version.commitID=$(git rev-parse HEAD)"
var (
	commitID = "unknown"
	version  = "dev"
)

func Version() string {
	return version
}

func CommitID() string {
	return commitID
}

// BuildInfo returns a multi-line summary for --version output
func BuildInfo() string {
	return fmt.Sprintf("CommitID: %s\nVersion: %s\n", commitID, version)
}
