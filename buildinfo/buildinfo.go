//go:generate go run ./script/buildinfo-extractor.go .

// Package buildinfo carries the version stamped in by go generate.
package buildinfo

var Version = "dev"

// BuildInfo returns the short git revision the binary was generated from.
func BuildInfo() string {
	return Version
}
