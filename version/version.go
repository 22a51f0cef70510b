package version

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Get returns the version string, falling back to "dev" for local builds.
func Get() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
