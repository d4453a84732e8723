// Package taxodrift holds build information shared by the CLI.
package taxodrift

var (
	// Version of the application, set by the linker.
	Version = "v0.1.0"
	// Build timestamp, set by the linker.
	Build = "n/a"
)
