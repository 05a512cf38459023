// Package cli provides the command-line interface for themegroup.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themegroup/internal/config"
	"github.com/jmylchreest/themegroup/internal/group"
	"github.com/jmylchreest/themegroup/internal/report"
	"github.com/jmylchreest/themegroup/internal/scan"
	"github.com/jmylchreest/themegroup/internal/version"
)

// globalOptions holds flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// NewRootCmd builds the themegroup command tree. Running it without a
// subcommand scans the configured root and writes the report.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "themegroup",
		Short: "Group HTML pages by their colour signature",
		Long: `themegroup walks a directory tree, reads the code.html file of every
directory that has one, and groups the directory names by the first five
sorted unique hex colours found in the file.

The groups are written to theme_groups.json and the number of distinct
signatures is printed.

Examples:
  # Scan the current directory
  themegroup

  # Scan an export and write YAML
  themegroup --root ./stitch --format yaml --output groups.yaml

  # Show what was grouped and what was skipped
  themegroup -v --root ./stitch`,
		Args:         cobra.NoArgs,
		Version:      version.Short(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/themegroup/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Flags().StringP("root", "r", config.DefaultRoot, "directory to scan")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutput, "report file to write")
	rootCmd.Flags().String("marker", config.DefaultMarker, "file name that marks a directory for scanning")
	rootCmd.Flags().Int("signature-size", config.DefaultSignatureSize, "number of sorted colours in a signature")
	rootCmd.Flags().Int64("max-file-size", 0, "skip marker files larger than this many bytes (0 = unlimited)")
	rootCmd.Flags().StringP("format", "f", config.DefaultFormat, "report format (json, yaml)")

	rootCmd.SetVersionTemplate(version.Get().String() + "\n")

	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger creates the command logger on w, levelled by the global flags.
func newLogger(w io.Writer, opts *globalOptions) hclog.Logger {
	level := hclog.Warn
	switch {
	case opts.verbose:
		level = hclog.Debug
	case opts.quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "themegroup",
		Output: w,
		Level:  level,
	})
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runScan executes the default scan-group-write pass.
func runScan(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts)
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	scanner := scan.New(cfg.Scan.Root,
		scan.WithMarker(cfg.Scan.Marker),
		scan.WithMaxFileSize(cfg.Scan.MaxFileSize),
		scan.WithLogger(logger.Named("scan")),
	)
	logger.Debug("scanning", "root", scanner.Root(), "marker", cfg.Scan.Marker)

	groups, stats, err := group.Build(scanner.Folders(), group.Options{
		SignatureSize: cfg.Scan.SignatureSize,
		Logger:        logger.Named("group"),
	})
	if err != nil {
		return err
	}
	logger.Debug("scan complete", "folders", stats.Folders, "summary", stats.String())

	if err := report.Write(cfg.Report.Output, groups, format); err != nil {
		return err
	}
	logger.Debug("wrote report", "path", cfg.Report.Output, "format", format)

	if !opts.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(groups.Len()))
	}
	return nil
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
