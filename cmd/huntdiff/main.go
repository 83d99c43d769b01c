// huntdiff compares text files line by line.
//
// Usage:
//
//	huntdiff diff FILE1 FILE2       # normal diff output
//	huntdiff diff -r DIR1 DIR2      # compare directory trees
//	huntdiff compare [FILE1 FILE2]  # compare output quality against go-diff
//	huntdiff version
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// errDifferences signals exit status 1: the inputs differ.
var errDifferences = errors.New("differences found")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the diff(1) exit status:
// 0 when the inputs are the same, 1 when they differ, 2 on trouble.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferences):
		return 1
	default:
		fmt.Fprintf(stderr, "huntdiff: %v\n", err)
		return 2
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "huntdiff",
		Short:         "Line-based diff using the Hunt–McIlroy algorithm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}

	rootCmd.AddCommand(diffCmd(logger))
	rootCmd.AddCommand(compareCmd(logger))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "huntdiff %s\n", version)
		},
	}
}
