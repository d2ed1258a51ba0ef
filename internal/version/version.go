// Package version holds the CLI version string.
package version

// Version is the current release version.
const Version = "0.1.0"
