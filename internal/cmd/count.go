package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/val1s-archive/val1s/scan"
)

// NewCountCmd creates and returns the count subcommand for the val1s CLI.
// It reports what a scan would inventory without writing any artifacts.
func NewCountCmd() *cobra.Command {
	var (
		profile string
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "count [TARGET]",
		Short: "Count the files a scan would inventory",
		Long: `Walk a directory tree with the configured skip rules and count the
regular files that would enter the inventory, without hashing or
writing reports. Useful for sizing a scan before committing to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "./"
			if len(args) > 0 {
				target = args[0]
			}
			return runCount(cmd, target, profile, follow)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "YAML profile with scan configuration")
	cmd.Flags().BoolVar(&follow, "follow-symlinks", false, "Follow symlinks during the walk")

	return cmd
}

func runCount(cmd *cobra.Command, target, profile string, follow bool) error {
	cfg, err := mergeProfile(profile, scan.Config{FollowSymlinks: follow})
	if err != nil {
		return err
	}
	scanner, err := scan.New(cfg)
	if err != nil {
		return err
	}

	inv, err := scanner.Scan(cmd.Context(), target)
	if err != nil {
		return err
	}

	stats := scanner.Stats()
	candidates := 0
	for _, paths := range inv.SizeBuckets() {
		if len(paths) >= 2 {
			candidates += len(paths)
		}
	}

	fmt.Printf("Total files: %s (%s)\n",
		humanize.Comma(stats.FilesSeen), humanize.Bytes(uint64(stats.BytesSeen)))
	fmt.Printf("Skipped entries: %s\n", humanize.Comma(stats.EntriesSkipped))
	fmt.Printf("Duplicate candidates (size collisions): %d\n", candidates)
	return nil
}
