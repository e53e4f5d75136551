// Package cmd implements the command line interface for the application.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/whit3rabbit/trash-code/internal/config"
)

const (
	version = "1.0.0"

	rootLongDescription = `trash-code turns readable JavaScript into code that still runs the same
but is hard to read: declared identifiers are renamed, string literals are
hex-escaped, a dead-code snippet is injected, comments and blank lines are
stripped and line breaks are randomized.

Each input is written next to itself with ".trash" before the extension
(app.js -> app.trash.js) unless --output is given.`
)

// rootFlags holds the values of the root command's flags.
type rootFlags struct {
	cfgFile string
	output  string
	emitMap string
	silent  bool
	verbose bool
	verify  bool
	jobs    int

	noVariables    bool
	noDeadCode     bool
	noStrings      bool
	noMinify       bool
	noLineBreaks   bool
	noSpaces       bool
	noSwapKeywords bool
}

// cli ties the command tree to the configuration it loads.
type cli struct {
	flags  rootFlags
	cfg    *config.Config
	logEnd io.Closer
	root   *cobra.Command
}

func newCLI() *cli {
	c := &cli{}

	c.root = &cobra.Command{
		Use:     "trash-code <input>...",
		Short:   "Turn readable JavaScript into trash code",
		Long:    rootLongDescription,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		// Execute prints errors itself.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.run(cmd, args)
		},
	}

	f := &c.flags
	pf := c.root.PersistentFlags()
	pf.StringVarP(&f.cfgFile, "config", "c", "", "config file (default is ./"+config.DefaultConfigFile+")")
	pf.BoolVarP(&f.silent, "silent", "s", false, "Suppress the summary and informational output (overrides config)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Log at debug level (overrides config)")

	fl := c.root.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "Output file path (only with a single input; default: <input>.trash.js)")
	fl.StringVar(&f.emitMap, "emit-map", "", "Write the identifier map of the run to this YAML file (only with a single input)")
	fl.BoolVar(&f.verify, "verify", false, "Check that the output still parses as JavaScript (overrides config)")
	fl.IntVarP(&f.jobs, "jobs", "j", 1, "Number of files processed concurrently (overrides config)")
	fl.BoolVar(&f.noVariables, "no-variables", false, "Disable identifier renaming")
	fl.BoolVar(&f.noDeadCode, "no-dead-code", false, "Disable dead code injection")
	fl.BoolVar(&f.noStrings, "no-strings", false, "Disable string literal encoding")
	fl.BoolVar(&f.noMinify, "no-minify", false, "Disable comment and blank line stripping")
	fl.BoolVar(&f.noLineBreaks, "no-line-breaks", false, "Disable line break randomization")
	fl.BoolVar(&f.noSpaces, "no-spaces", false, "Disable random spaces (reserved, currently has no effect)")
	fl.BoolVar(&f.noSwapKeywords, "no-swap-keywords", false, "Keep declaration keywords instead of swapping them for var/let")

	c.root.AddCommand(newWhatisCmd())
	c.root.AddCommand(newExampleCmd())
	c.root.AddCommand(newConfigCmd())

	return c
}

// newRootCmd returns a fresh command tree.
func newRootCmd() *cobra.Command {
	return newCLI().root
}

// loadConfig loads the configuration once, applies flag overrides and
// configures logging.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.LoadConfig(c.flags.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	applyFlagOverrides(cfg, cmd, &c.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.logEnd = configureLogger(cfg.Log, cfg.DebugMode, cmd.ErrOrStderr())
	return nil
}

// applyFlagOverrides applies command-line flag values to the config struct.
// Only overrides if the flag was explicitly set by the user via cmd.Flags().Changed().
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command, f *rootFlags) {
	flags := cmd.Flags()
	if flags.Changed("silent") {
		cfg.Silent = f.silent
	}
	if flags.Changed("verbose") {
		cfg.DebugMode = f.verbose
	}
	if flags.Changed("verify") {
		cfg.Verify = f.verify
	}
	if flags.Changed("jobs") {
		cfg.Jobs = f.jobs
	}

	toggles := []struct {
		flag     string
		disabled bool
		target   *bool
	}{
		{"no-variables", f.noVariables, &cfg.Obfuscation.Variables},
		{"no-dead-code", f.noDeadCode, &cfg.Obfuscation.DeadCode},
		{"no-strings", f.noStrings, &cfg.Obfuscation.Strings},
		{"no-minify", f.noMinify, &cfg.Obfuscation.Minify},
		{"no-line-breaks", f.noLineBreaks, &cfg.Obfuscation.RandomLineBreaks},
		{"no-spaces", f.noSpaces, &cfg.Obfuscation.RandomSpaces},
		{"no-swap-keywords", f.noSwapKeywords, &cfg.Obfuscation.SwapKeywords},
	}
	for _, t := range toggles {
		if flags.Changed(t.flag) {
			*t.target = !t.disabled
		}
	}
}

// run obfuscates every input, at most cfg.Jobs at a time. The first
// failure cancels the files not yet started.
func (c *cli) run(cmd *cobra.Command, inputs []string) error {
	if len(inputs) > 1 && c.flags.output != "" {
		return errors.New("--output can only be used with a single input file")
	}
	if len(inputs) > 1 && c.flags.emitMap != "" {
		return errors.New("--emit-map can only be used with a single input file")
	}
	cmd.SilenceUsage = true

	reports := make([]fileReport, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(c.cfg.Jobs)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := processInput(input, c.flags.output, c.flags.emitMap, c.cfg)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if !c.cfg.Silent {
		for _, report := range reports {
			printReport(cmd.OutOrStdout(), report)
		}
	}
	return nil
}

func (c *cli) execute() error {
	defer func() {
		if c.logEnd != nil {
			c.logEnd.Close()
		}
	}()
	return c.root.Execute()
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := newCLI().execute(); err != nil {
		errorStyle.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}
