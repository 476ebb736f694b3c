package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/val1s-archive/val1s/report"
	"github.com/val1s-archive/val1s/scan"
)

// NewScanCmd creates and returns the scan subcommand for the val1s CLI.
// It runs the full inventory and duplicate detection pipeline and
// writes both CSV reports.
func NewScanCmd() *cobra.Command {
	var (
		outputDir string
		profile   string
		verbose   bool
		cfg       scan.Config
	)

	cmd := &cobra.Command{
		Use:   "scan TARGET",
		Short: "Inventory a directory tree and detect duplicate content",
		Long: `Inventory every regular file under TARGET and detect files whose
content is byte-identical.

Duplicate detection hashes only files whose size collides with at
least one other file, and hardlinks to the same inode are read from
storage exactly once. Two CSV reports are written to the output
directory: the inventory (path, size_bytes, modified_time_utc) and the
duplicate groups (digest, path).

Skip rules and hashing options can also be loaded from a YAML profile;
flags given on the command line extend the profile's skip lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], outputDir, profile, verbose, cfg)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write CSV reports into")
	cmd.Flags().StringVar(&profile, "profile", "", "YAML profile with scan configuration")
	cmd.Flags().BoolVar(&cfg.FollowSymlinks, "follow-symlinks", false, "Follow symlinks during the walk")
	cmd.Flags().StringVar(&cfg.HashAlgorithm, "hash", "", "Hash algorithm: sha256, sha1, sha512, or blake3")
	cmd.Flags().IntVar(&cfg.ChunkSize, "chunk-size", 0, "Hashing read buffer size in bytes (default 1 MiB)")
	cmd.Flags().IntVar(&cfg.HashWorkers, "workers", 0, "Concurrent hash workers (default: number of CPUs)")
	cmd.Flags().StringArrayVar(&cfg.SkipNames, "skip-name", nil, "Basename to skip (repeatable)")
	cmd.Flags().StringArrayVar(&cfg.SkipExtensions, "skip-ext", nil, "Extension suffix to skip, e.g. .tmp (repeatable)")
	cmd.Flags().StringArrayVar(&cfg.SkipPathPrefixes, "skip-prefix", nil, "Absolute path prefix to skip (repeatable)")
	cmd.Flags().StringArrayVar(&cfg.SkipGlobs, "skip-glob", nil, "Glob pattern to skip, e.g. '**/*.bak' (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runScan(cmd *cobra.Command, target, outputDir, profile string, verbose bool, flagCfg scan.Config) error {
	cfg, err := mergeProfile(profile, flagCfg)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	start := time.Now()
	if verbose {
		log.Printf("[val1s] run %s: scanning %s", runID, target)
	}

	scanner, err := scan.New(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	inv, err := scanner.Scan(ctx, target)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	invPath, err := report.WriteFile(outputDir, "inventory", start, func(w io.Writer) error {
		return report.WriteInventory(w, inv.Records)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Inventory report written to: %s\n", invPath)

	groups, err := scanner.FindDuplicates(ctx, inv)
	if err != nil {
		return fmt.Errorf("duplicate detection failed: %w", err)
	}

	dupePath, err := report.WriteFile(outputDir, "dupes", start, func(w io.Writer) error {
		return report.WriteDuplicates(w, groups)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Duplicate report written to: %s\n", dupePath)

	stats := scanner.Stats()
	fmt.Printf("Scanned %s files (%s) in %s: %d duplicate groups, %d hashed, %d skipped\n",
		humanize.Comma(stats.FilesSeen),
		humanize.Bytes(uint64(stats.BytesSeen)),
		time.Since(start).Round(time.Millisecond),
		len(groups),
		stats.HashesComputed,
		stats.EntriesSkipped)
	if stats.StatFailures > 0 || stats.HashFailures > 0 {
		fmt.Printf("Warnings: %d unreadable entries, %d hash failures\n",
			stats.StatFailures, stats.HashFailures)
	}
	return nil
}

// mergeProfile loads the YAML profile (when given) and layers the
// command-line flags on top: scalar flags override when set, skip lists
// are appended.
func mergeProfile(profile string, flagCfg scan.Config) (scan.Config, error) {
	if profile == "" {
		return flagCfg, nil
	}
	cfg, err := scan.LoadConfig(profile)
	if err != nil {
		return cfg, err
	}
	if flagCfg.FollowSymlinks {
		cfg.FollowSymlinks = true
	}
	if flagCfg.HashAlgorithm != "" {
		cfg.HashAlgorithm = flagCfg.HashAlgorithm
	}
	if flagCfg.ChunkSize != 0 {
		cfg.ChunkSize = flagCfg.ChunkSize
	}
	if flagCfg.HashWorkers != 0 {
		cfg.HashWorkers = flagCfg.HashWorkers
	}
	cfg.SkipNames = append(cfg.SkipNames, flagCfg.SkipNames...)
	cfg.SkipExtensions = append(cfg.SkipExtensions, flagCfg.SkipExtensions...)
	cfg.SkipPathPrefixes = append(cfg.SkipPathPrefixes, flagCfg.SkipPathPrefixes...)
	cfg.SkipGlobs = append(cfg.SkipGlobs, flagCfg.SkipGlobs...)
	return cfg, nil
}
