package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/chaifriendly/lint/cmd/chailint/commands"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values over build info
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsCommit = setting.Value
			if len(vcsCommit) >= 7 {
				vcsCommit = vcsCommit[:7]
			}
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "chailint",
	Short: "Lint JavaScript and TypeScript test suites without tripping over chai assertions",
	Long: `chailint lints JavaScript and TypeScript sources.

It ships two rules:
- no-unused-expressions reports expression statements that do nothing, while
  accepting chai assertions such as expect(x).to.be.true and x.should.be.ok
- no-unsafe-call reports calls, constructions and template tags applied to
  values typed any (requires type facts)`,
	SilenceErrors: true,
}

func init() {
	currentVersion, currentCommit, currentDate := getVersionInfo()
	rootCmd.Version = currentVersion

	var versionTemplate strings.Builder
	versionTemplate.WriteString(`{{printf "%s" .Version}}`)
	if currentCommit != "none" && currentCommit != "" {
		versionTemplate.WriteString("\nBuild: " + currentCommit)
	}
	if currentDate != "unknown" && currentDate != "" {
		versionTemplate.WriteString("\nBuilt: " + currentDate)
	}
	rootCmd.SetVersionTemplate(versionTemplate.String())

	commands.Apply(rootCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
