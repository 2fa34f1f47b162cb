package main

import (
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/cmd"
)

var version string // set by goreleaser

func init() {
	cmd.Version = version
}

func main() {
	cmd.Main()
}
