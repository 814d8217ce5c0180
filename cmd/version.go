package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Build variables, set with -ldflags "-X github.com/killallgit/fieldguide-api/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// currentVersion fills commit and build time from the module's VCS stamp
// when ldflags did not set them
func currentVersion() versionInfo {
	info := versionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Display version information about the Field Guide API server:
version, git commit, build time and Go runtime.`,
		RunE: runVersion,
	}

	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
	return versionCmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := currentVersion()

	if short, _ := cmd.Flags().GetBool("short"); short {
		_, err := fmt.Fprintf(out, "v%s\n", info.Version)
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	writeVersionTable(out, info)
	return nil
}

func writeVersionTable(out io.Writer, info versionInfo) {
	rule := strings.Repeat("-", 40)
	fmt.Fprintln(out, "Field Guide API")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-13s v%s\n", "Version:", info.Version)
	fmt.Fprintf(out, "%-13s %s\n", "Git Commit:", info.GitCommit)
	fmt.Fprintf(out, "%-13s %s\n", "Build Time:", info.BuildTime)
	fmt.Fprintf(out, "%-13s %s\n", "Go Version:", info.GoVersion)
	fmt.Fprintf(out, "%-13s %s\n", "Platform:", info.Platform)
	fmt.Fprintln(out, rule)
}
