package cmd

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the val1s CLI.
// It generates a duplicate- and hardlink-rich test tree.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		poolSize   int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a duplicate-rich test tree",
		Long: `Generate test files for exercising val1s scans.

Creates files in a YYYY/MM/DD directory structure with content drawn
from a small pool of UUIDs, so byte-identical duplicates are
guaranteed across the tree. Roughly every tenth file is created as a
hardlink to an earlier file to exercise the inode-aware hash cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(outputPath, fileCount, poolSize, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10000, "Number of files to generate")
	cmd.Flags().IntVar(&poolSize, "pool", 50, "Number of distinct file contents")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount, poolSize int, verbose bool) error {
	if verbose {
		fmt.Printf("Generating %d test files in %s\n", fileCount, outputPath)
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	contentPool := make([][]byte, poolSize)
	for i := range contentPool {
		contentPool[i] = []byte(uuid.New().String() + "\n")
	}

	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var lastPath string

	for i := 0; i < fileCount; i++ {
		dayOffset, _ := rand.Int(rand.Reader, big.NewInt(365))
		fileDate := baseDate.AddDate(0, 0, int(dayOffset.Int64()))
		dir := filepath.Join(outputPath, fileDate.Format("2006/01/02"))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("clip_%06d.dat", i))
		if i%10 == 9 && lastPath != "" {
			if err := os.Link(lastPath, path); err != nil {
				return fmt.Errorf("hardlinking %s: %w", path, err)
			}
		} else {
			pick, _ := rand.Int(rand.Reader, big.NewInt(int64(poolSize)))
			if err := os.WriteFile(path, contentPool[pick.Int64()], 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			lastPath = path
		}

		if verbose && (i+1)%1000 == 0 {
			fmt.Printf("Progress: %d files created\n", i+1)
		}
	}

	fmt.Printf("Created %d files in %s\n", fileCount, outputPath)
	return nil
}
