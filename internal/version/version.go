package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dotprofile/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotprofile/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotprofile/internal/version.Date={{.Date}}
)

// String returns a one-line version description.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
