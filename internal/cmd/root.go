package cmd

import (
	"github.com/spf13/cobra"
	"github.com/val1s-archive/val1s/version"
)

// NewRootCmd creates and returns the root cobra command for the val1s CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "val1s",
		Short: "val1s - media archive inventory, duplicate detection, and conformance auditing",
		Long: `val1s audits large media archives on local filesystems.

It inventories every regular file under a target directory, detects
byte-identical duplicates using a size prefilter and hardlink-aware
content hashing, and can check media files against a JSON format
policy. Reports are written as CSV with stable headers for downstream
tooling.

Use subcommands to perform different operations:
  - scan: Inventory a tree and detect duplicate content
  - check: Evaluate media files against a format policy
  - count: Count the files a scan would inventory
  - seed: Generate a duplicate-rich test tree`,
		Version: version.GetFullVersion(),
	}

	groupAudit := "audit"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAudit,
		Title: "Audit Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	scanCmd := NewScanCmd()
	checkCmd := NewCheckCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()

	scanCmd.GroupID = groupAudit
	checkCmd.GroupID = groupAudit
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
