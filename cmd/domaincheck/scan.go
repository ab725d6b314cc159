package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/domaincheck/domaincheck/internal/config"
	"github.com/domaincheck/domaincheck/internal/log"
	"github.com/domaincheck/domaincheck/internal/model"
	"github.com/domaincheck/domaincheck/internal/pipeline"
	"github.com/domaincheck/domaincheck/internal/probe"
	"github.com/domaincheck/domaincheck/internal/report"
)

// preflight verifies the environment before anything interactive
// happens. It is a variable so tests can simulate a broken host.
var preflight = probe.Preflight

// runScanCmd executes the default scan behavior of the root command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Set up structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Every check needs working name resolution; refuse before prompting
	// the user for a domain that could only produce six identical
	// failures.
	if err := preflight(); err != nil {
		return err
	}

	// Collect the domain interactively when it was not supplied
	if cfg.Domain == "" {
		cfg.Domain, err = promptDomain(cmd)
		if err != nil {
			return err
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	domain, err := model.NewDomain(cfg.Domain)
	if err != nil {
		return fmt.Errorf("invalid domain %q: %w", cfg.Domain, err)
	}
	cfg.ApplyOverrides(domain.String())

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, domain, logger)
}

// promptDomain reads the target domain from the user interactively.
func promptDomain(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Domain to inspect: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading domain: %w", err)
		}
		return "", config.ErrNoDomain
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, _ []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Domain, err = cmd.Flags().GetString("domain")
	if err != nil {
		return nil, err
	}

	cfg.ProbeTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ResolverAddress, err = cmd.Flags().GetString("resolver")
	if err != nil {
		return nil, err
	}

	cfg.BlacklistZone, err = cmd.Flags().GetString("blacklist-zone")
	if err != nil {
		return nil, err
	}

	zones, err := cmd.Flags().GetStringSlice("blacklist-zones")
	if err != nil {
		return nil, err
	}
	if len(zones) > 0 {
		cfg.BlacklistZones = zones
	}

	for flag, target := range map[string]*bool{
		"no-whois":           &cfg.NoWhois,
		"no-dns":             &cfg.NoDNS,
		"no-website":         &cfg.NoWebsite,
		"no-blacklist":       &cfg.NoBlacklist,
		"no-cms":             &cfg.NoCMS,
		"no-blacklist-check": &cfg.NoBlacklistExtended,
	} {
		*target, err = cmd.Flags().GetBool(flag)
		if err != nil {
			return nil, err
		}
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-domain configuration overrides.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.Overrides = &config.File{
			Domains: make(map[string]config.DomainConfig),
		}
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getPersistentBool(cmd, "verbose")
	cfg.LogJSON = getPersistentBool(cmd, "log-json")

	return cfg, nil
}

// getPersistentBool retrieves a boolean flag from the command or its parent.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}

// newLogger builds the redacting logger in the configured output format.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return log.NewJSONLogger(os.Stderr, cfg.Verbose)
	}
	return log.NewLogger(os.Stderr, cfg.Verbose)
}

// runScan executes the scan and renders the report.
func runScan(ctx context.Context, cfg *config.Config, domain model.Domain, logger *slog.Logger) error {
	probes := probe.NewRegistry(cfg)
	if len(probes) == 0 {
		return fmt.Errorf("all checks are disabled; nothing to do")
	}

	logger.Info("starting scan",
		"domain", domain.String(),
		"checks", len(probes),
		"timeout", cfg.ProbeTimeout,
	)

	runner := pipeline.NewRunner(probes,
		pipeline.WithLogger(logger),
		pipeline.WithProbeTimeout(cfg.ProbeTimeout),
	)

	start := time.Now()
	slots := runner.Run(ctx, domain)

	result := model.NewReport(domain, slots)
	result.DateScanned = start
	result.Duration = time.Since(start)

	logger.Info("scan finished",
		"domain", domain.String(),
		"sections", result.SectionCount(),
		"errors", result.FailureCount(),
	)

	return outputReport(cfg, result)
}

// outputReport renders the report to stdout or to the configured file.
func outputReport(cfg *config.Config, result *model.Report) error {
	if cfg.ReportFile == "" {
		w := newWriter(cfg, os.Stdout)
		_, err := w.Write(result)
		return err
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Assemble in the scratch directory first so a failed render never
	// leaves a truncated file at the destination.
	scratch := config.ScratchDir()
	if err := os.MkdirAll(scratch, 0o750); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}

	tmp, err := os.CreateTemp(scratch, "report-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := newWriter(cfg, tmp)
	if _, err := w.Write(result); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to finish scratch file: %w", err)
	}

	// Rename fails when the destination sits on another filesystem;
	// fall back to copying the rendered bytes.
	if err := os.Rename(tmpPath, cfg.ReportFile); err != nil {
		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return fmt.Errorf("failed to move report: %w", err)
		}
		if writeErr := os.WriteFile(cfg.ReportFile, data, 0o600); writeErr != nil {
			return fmt.Errorf("failed to write report: %w", writeErr)
		}
	}

	fmt.Fprintf(os.Stdout, "Report written to %s\n", cfg.ReportFile)
	return nil
}

// newWriter picks the report format from the configuration.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	if cfg.MarkdownReport {
		return report.NewMarkdownWriter(out)
	}
	return report.NewTextWriter(out, report.WithVerbose(cfg.Verbose))
}
