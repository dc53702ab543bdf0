// Package commands implements the chailint subcommands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

// Apply adds the chailint subcommands to rootCmd.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewLintCmd())
	rootCmd.AddCommand(NewRulesCmd())
	rootCmd.AddCommand(NewDocsCmd())
}

func reportElapsed(w io.Writer, action string, elapsed time.Duration) {
	roundedElapsed := elapsed.Round(time.Millisecond)
	if roundedElapsed < time.Millisecond {
		roundedElapsed = time.Millisecond
	}

	fmt.Fprintf(w, "%s completed in %s\n", action, roundedElapsed)
}
