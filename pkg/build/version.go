package build

// These are set at link time, e.g.
// -ldflags "-X github.com/storacha/ramd/pkg/build.Version=v0.1.0"
var (
	Version = "v0.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)
