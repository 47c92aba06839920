// Package buildinfo holds version information stamped at link time.
package buildinfo

//nolint:gochecknoglobals // Set with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
