package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/studybuddy/cmd.version=v1.2.3".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the studybuddy build version",
	Long: `Print the studybuddy release version along with the Go toolchain and,
for builds from a git checkout, the commit it was built from.`,
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		fmt.Fprintln(cmd.OutOrStdout(), versionLine(version, runtime.Version(), info))
	},
}

// versionLine formats "studybuddy <version> (<go>, <commit>)". The commit is
// shortened to twelve characters and suffixed with "+dirty" for builds with
// local modifications.
func versionLine(v, goVersion string, info *debug.BuildInfo) string {
	commit := ""
	dirty := false
	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				commit = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if v == "(devel)" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if commit == "" {
		return fmt.Sprintf("studybuddy %s (%s)", v, goVersion)
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if dirty {
		commit += "+dirty"
	}
	return fmt.Sprintf("studybuddy %s (%s, %s)", v, goVersion, commit)
}
