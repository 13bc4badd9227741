package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", Version)
		return
	}

	fmt.Fprintln(out, "Audio Sentiment Recorder")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "Version:      v%s\n", Version)
	fmt.Fprintf(out, "Git Commit:   %s\n", GitCommit)
	fmt.Fprintf(out, "Build Time:   %s\n", BuildTime)
	fmt.Fprintf(out, "Go Version:   %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out, strings.Repeat("-", 40))
}
