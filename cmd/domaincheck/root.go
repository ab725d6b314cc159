package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domaincheck/domaincheck/internal/config"
)

// NewRootCmd creates the root command for domaincheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domaincheck",
		Short: "Inspect a registered internet domain",
		Long: `Domaincheck runs a set of independent checks against a single domain
and renders one consolidated report:

- WHOIS registration data (registrar, dates, name servers)
- DNS records (A, NS, MX, TXT, CNAME)
- Website reachability over HTTP and HTTPS
- DNS blacklist presence, single zone and extended zone set
- Publishing platform detection (WordPress, Joomla, Drupal, ...)

Checks run concurrently; each has its own timeout budget, so one slow
check cannot stall the rest. Report sections always appear in the same
order regardless of which check finished first.

Examples:
  # Inspect a domain
  domaincheck --domain example.com

  # Prompt for the domain interactively
  domaincheck

  # Use a specific resolver and a custom blacklist zone
  domaincheck -d example.com --resolver 9.9.9.9 --blacklist-zone bl.spamcop.net

  # Skip slow checks
  domaincheck -d example.com --no-whois --no-blacklist-check

  # Write a Markdown report to a file
  domaincheck -d example.com --markdown -o report.md

Configuration file (.domaincheck) example:
  defaults:
    timeout: 10s
  domains:
    example.com:
      resolver: "9.9.9.9"
      blacklist_zone: "bl.spamcop.net"`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScanCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of key=value text")

	// Target
	cmd.Flags().StringP("domain", "d", "", "Domain to inspect (prompted for when omitted)")

	// Check behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultProbeTimeout,
		"Timeout budget for each individual check")
	cmd.Flags().StringP("resolver", "r", "",
		"Recursive DNS resolver address for blacklist queries (e.g., 9.9.9.9:53)")
	cmd.Flags().String("blacklist-zone", config.DefaultBlacklistZone,
		"DNSBL zone for the single blacklist check")
	cmd.Flags().StringSlice("blacklist-zones", nil,
		"DNSBL zones for the extended blacklist check (default: built-in set)")

	// Check toggles
	cmd.Flags().Bool("no-whois", false, "Skip the WHOIS check")
	cmd.Flags().Bool("no-dns", false, "Skip the DNS record check")
	cmd.Flags().Bool("no-website", false, "Skip the website reachability check")
	cmd.Flags().Bool("no-blacklist", false, "Skip the single-zone blacklist check")
	cmd.Flags().Bool("no-cms", false, "Skip the platform detection check")
	cmd.Flags().Bool("no-blacklist-check", false, "Skip the extended blacklist check")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .domaincheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report instead of plain text")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Add subcommands
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
