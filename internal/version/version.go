// Package version exposes vbump's build version, set at link time via
// -ldflags "-X github.com/indaco/vbump/internal/version.buildVersion=...".
package version

// buildVersion is overridden by the release build; dev builds report "dev".
var buildVersion = "dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return buildVersion
}
