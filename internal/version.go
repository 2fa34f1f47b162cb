package internal

// Version is set by main from build information.
var Version = "v0.0.0"
