/*
Copyright © 2024 huimingz

aicommit - AI-generated commit messages for your git changes
*/
package main

import (
	"os"

	"github.com/huimingz/aicommit-go/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	os.Exit(cli.Execute())
}
