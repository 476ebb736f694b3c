// Package main provides the val1s command-line interface.
//
// val1s is a media archive auditing tool. It inventories filesystem
// trees, detects byte-identical duplicate content with a size prefilter
// and hardlink-aware SHA-256 hashing, and checks media files against
// JSON format policies. All reports are CSV with stable headers so
// downstream tooling can parse by column name.
//
// The main binary supports multiple subcommands:
//   - scan: Inventory a tree and detect duplicate content
//   - check: Evaluate media files against a format policy
//   - count: Count the files a scan would inventory
//   - seed: Generate a duplicate-rich test tree
package main
