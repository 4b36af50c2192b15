// Package buildinfo holds version metadata injected at build time.
package buildinfo

// Set via -ldflags "-X github.com/minibooks-dev/minibooks/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
