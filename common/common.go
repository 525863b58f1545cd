// Package common holds process-wide helpers shared by the command binaries:
// logger construction and build metadata.
package common

var (
	// Version is overridden at build time with -ldflags "-X ...common.Version=..."
	Version = "dev"

	PackageName = "github.com/ruteri/dial-descriptor"
)
