package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/themegroup/internal/colour"
	"github.com/jmylchreest/themegroup/internal/report"
)

const (
	defaultFolderWidth = 60
	minFolderWidth     = 20
)

// showOptions holds flags for the show command.
type showOptions struct {
	preview bool
	width   int
}

// newShowCmd creates the show command.
func newShowCmd(global *globalOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [report]",
		Short: "Display a theme group report",
		Long: `Display the groups of a report written by themegroup as a table.

Each row lists a signature, the number of folders sharing it and the folder
names. With --preview the signature colours are drawn as swatches.

The report format follows the file extension (.json, .yaml, .yml) and falls
back to the configured format.

Examples:
  # Show the report in the current directory
  themegroup show

  # Show a specific report without swatches
  themegroup show --preview=false exports/theme_groups.json

  # Show a YAML report
  themegroup show groups.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, global, opts)
		},
	}

	stdoutIsTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	cmd.Flags().BoolVar(&opts.preview, "preview", stdoutIsTerminal, "show colour swatches (default: on when stdout is a terminal)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "maximum width of the folders column (default: fit terminal)")

	return cmd
}

// runShow renders the report as a table on stdout.
func runShow(cmd *cobra.Command, args []string, global *globalOptions, opts *showOptions) error {
	cfg, err := loadConfig(cmd, global)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	path := cfg.Report.Output
	if len(args) == 1 {
		path = args[0]
		format = report.FormatForPath(path, format)
	}

	logger := newLogger(cmd.ErrOrStderr(), global)
	logger.Debug("reading report", "path", path, "format", format)

	groups, err := report.Read(path, format)
	if err != nil {
		return err
	}

	headers := []string{"SIGNATURE", "FOLDERS", "NAMES"}
	if opts.preview {
		headers = append(headers, "SWATCHES")
	}

	table := NewTable(headers)
	table.SetColumnMaxWidth(2, folderColumnWidth(opts.width))

	for _, signature := range groups.Keys() {
		members := groups.Members(signature)

		label := signature
		if label == "" {
			label = "(none)"
		}

		row := []string{label, strconv.Itoa(len(members)), strings.Join(members, ", ")}
		if opts.preview {
			row = append(row, colour.SignatureSwatches(signature))
		}
		table.AddRow(row)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, table.Render())
	if !global.quiet {
		fmt.Fprintln(out, report.Summary(groups.Len()))
	}
	return nil
}

// folderColumnWidth picks the wrap width for folder names: the flag if set,
// otherwise half the terminal, otherwise a fixed default.
func folderColumnWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultFolderWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return defaultFolderWidth
	}
	return max(cols/2, minFolderWidth)
}
