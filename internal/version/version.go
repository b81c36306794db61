package version

// Version is overridden at build time via -ldflags.
var Version = "v0.1.0-dev"
