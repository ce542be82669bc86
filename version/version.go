package version

import "fmt"

var (
	// overridden at build time via -ldflags
	Version   = "dev"
	GitCommit = ""

	FullVersion = composeVersion()
)

func composeVersion() string {
	if GitCommit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
