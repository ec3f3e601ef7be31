// Package buildinfo carries the identity stamped into the termlab binary at
// link time. Release builds pass
// -ldflags "-X termlab/internal/buildinfo.Version=... -X ...Commit=... -X ...Date=...";
// a plain source build reports itself as dev.
package buildinfo

// Version is the release tag, set via -ldflags.
var Version = "dev"

// Commit is the short VCS revision, set via -ldflags.
var Commit = "unknown"

// Date is the build timestamp, set via -ldflags.
var Date = "unknown"

// Short returns the identifier shown by --version and the terminal status
// bar: the release tag when stamped, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
