// Package version contains the current version of carl, split out for easy
// use from both cmd/carl and any tests that need to assert on it.
package version

// Current is the version string carl reports for --version.
const Current = "0.1.0"
