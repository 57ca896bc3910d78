// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/mcdonaldj/partialtar/internal/archive"
	"github.com/mcdonaldj/partialtar/internal/config"
)

// ConfigService provides configuration defaults for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
}

// PackService runs the archiving pass.
type PackService interface {
	Pack(task archive.Task, progress io.Writer) (*archive.Result, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc ConfigService
	PackSvc   PackService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) {},
		green:   noColor,
		yellow:  noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }

// defaultPackService wraps the archive package functions.
type defaultPackService struct{}

func (d *defaultPackService) Pack(task archive.Task, progress io.Writer) (*archive.Result, error) {
	return archive.Pack(task, progress)
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) packSvc() PackService {
	if c.PackSvc != nil {
		return c.PackSvc
	}
	return &defaultPackService{}
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	flagSet := pflag.NewFlagSet("partialtar", pflag.ContinueOnError)
	flagSet.SetOutput(c.Err)
	maxSize := flagSet.Uint64P("max-size", "m", 0, "maximum size of the output archive in bytes (required)")
	output := flagSet.StringP("output", "o", "", "destination archive path, must not already exist (required)")
	verbose := flagSet.BoolP("verbose", "v", cfg.Verbose, "print per-file progress to standard error")
	quality := flagSet.Int("quality", cfg.Quality, "brotli quality (0-11)")
	window := flagSet.Int("window", cfg.Window, "brotli window size, log2 (10-24)")
	showVersion := flagSet.Bool("version", false, "print version and exit")
	help := flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { c.PrintUsage(flagSet) }

	if err := flagSet.Parse(c.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		c.Exit(1)
		return
	}

	if *help {
		c.PrintUsage(flagSet)
		return
	}
	if *showVersion {
		fmt.Fprintf(c.Out, "partialtar v%s\n", c.Version)
		return
	}

	if !flagSet.Changed("max-size") {
		fmt.Fprintln(c.Err, "Error: --max-size is required")
		c.Exit(1)
		return
	}
	if *output == "" {
		fmt.Fprintln(c.Err, "Error: --output is required")
		c.Exit(1)
		return
	}

	settings := config.Config{Quality: *quality, Window: *window}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	task := archive.Task{
		Files:   flagSet.Args(),
		Output:  *output,
		MaxSize: *maxSize,
		Quality: *quality,
		Window:  *window,
		Verbose: *verbose,
	}

	result, err := c.packSvc().Pack(task, c.Err)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	c.PrintSummary(result)
}

// PrintSummary reports the run outcome on standard error. This is the
// only user-visible difference between a fully packed archive and a
// truncated one.
func (c *CLI) PrintSummary(result *archive.Result) {
	if result.Truncated {
		fmt.Fprintf(c.Err, "%s %d out of %d files added (%d skipped)\n",
			c.yellow("Done!"), result.Added, result.Total, result.Skipped())
	} else {
		fmt.Fprintf(c.Err, "%s All %d files added to archive.\n",
			c.green("Done!"), result.Added)
	}
	fmt.Fprintf(c.Err, "%s\n", c.gray("Archive size: "+archive.FormatSize(result.Size)))
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(c.Out, `partialtar - pack files into a tar+brotli archive under a byte budget

Files are added in the given order until the next file would push the
archive past --max-size. The archive is then cut back to the last safe
compression boundary, so it always decodes cleanly; skipped files are
recorded in the manifest entry at the start of the archive.

Usage:
  partialtar --max-size <BYTES> --output <PATH> [flags] <FILES>...

Flags:
%s
Config: ~/.partialtar/config.yaml
`, flagSet.FlagUsages())
}
