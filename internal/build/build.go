// Package build holds information stamped in at build time.
package build

// Version is the mk release version. The default is replaced by
// -ldflags on release builds.
var Version = "dev"
