// Package main provides the entry point for the commitflow CLI tool.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/commitflow/app"
	"github.com/randalmurphal/commitflow/config"
	"github.com/randalmurphal/commitflow/git"
)

// Version information, injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "commitflow",
		Short: "Group uncommitted changes into semantic commits",
		Long: `Commitflow asks a text-generation backend to cluster your uncommitted
changes into semantically related groups, then creates one commit per
group with a locally rendered message.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommitCmd() *cobra.Command {
	var dryRun, single bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Group working-tree changes and commit each group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				DryRun: dryRun,
				Single: single,
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print previews without staging or committing")
	cmd.Flags().BoolVar(&single, "single", false, "collapse all groups into one commit")

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show resolved configuration and where each value came from",
		RunE: func(_ *cobra.Command, _ []string) error {
			var root string
			if g, err := git.NewContext("."); err == nil {
				root, _ = g.RootDir()
			}

			cfg := config.NewResolver(root).Resolve()
			all := cfg.All()
			keys := make([]string, 0, len(all))
			for key := range all {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				value := all[key]
				if key == config.KeyAPIKey {
					value = mask(value)
				}
				fmt.Printf("%-16s %-10s %s\n", key, "("+string(cfg.Source(key))+")", value)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("commitflow %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// mask hides all but the last four characters of a credential.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
