package version

import "fmt"

// Set at build time, e.g.
// go build -ldflags "-X Impeller/internal/version.Version=1.2.0"
var (
	Version = "0.3.0"

	BuildTime = "unknown"

	GitCommit = "unknown"
)

// String is the one-line form printed by `pumpcalc version` and /healthz logs.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
