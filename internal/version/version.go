package version

// Build metadata, set with -ldflags "-X tempmatch/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
