package cli

import (
	"fmt"
	"runtime"
)

// versionString renders the detailed --version output
func versionString() string {
	v, commit, buildTime := GetVersionInfo()
	return fmt.Sprintf("aicommit %s\n  Git Commit: %s\n  Build Time: %s\n  Go Version: %s\n  OS/Arch:    %s/%s\n",
		v, commit, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
