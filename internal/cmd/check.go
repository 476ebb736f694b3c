package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/val1s-archive/val1s/conform"
	"github.com/val1s-archive/val1s/report"
	"github.com/val1s-archive/val1s/scan"
)

// NewCheckCmd creates and returns the check subcommand for the val1s CLI.
// It evaluates media files against a JSON format policy using mediainfo.
func NewCheckCmd() *cobra.Command {
	var (
		policyPath string
		outputDir  string
		profile    string
		follow     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "check TARGET",
		Short: "Evaluate media files against a format policy",
		Long: `Walk TARGET with the same traversal and skip rules as scan, probe
each file with the mediainfo tool, and compare every track attribute
against the expected values in a JSON policy file.

Each deviation is reported as one CSV row (path, stream_type, key,
actual, expected). Files mediainfo cannot parse are skipped with a
warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], policyPath, outputDir, profile, follow, verbose)
		},
	}

	cmd.Flags().StringVarP(&policyPath, "policy", "p", "", "Path to JSON format policy (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the findings CSV into")
	cmd.Flags().StringVar(&profile, "profile", "", "YAML profile with scan configuration")
	cmd.Flags().BoolVar(&follow, "follow-symlinks", false, "Follow symlinks during the walk")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("policy")

	return cmd
}

func runCheck(cmd *cobra.Command, target, policyPath, outputDir, profile string, follow, verbose bool) error {
	policy, err := conform.LoadPolicy(policyPath)
	if err != nil {
		return err
	}

	cfg, err := mergeProfile(profile, scan.Config{FollowSymlinks: follow})
	if err != nil {
		return err
	}
	scanner, err := scan.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	ctx := cmd.Context()
	if verbose {
		log.Printf("[val1s] checking %s against policy %q", target, policy.Name)
	}

	inv, err := scanner.Scan(ctx, target)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	findings, err := conform.NewChecker(policy).Check(ctx, inv.Records)
	if err != nil {
		return fmt.Errorf("conformance check failed: %w", err)
	}

	path, err := report.WriteFile(outputDir, "conformance", start, func(w io.Writer) error {
		return report.WriteFindings(w, findings)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Conformance report written to: %s\n", path)
	fmt.Printf("Checked %s files against %q: %d findings\n",
		humanize.Comma(int64(inv.Len())), policy.Name, len(findings))
	return nil
}
