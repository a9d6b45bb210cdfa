package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/logging"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the global flags and what PersistentPreRunE builds from them
type app struct {
	configPath string
	format     string
	query      string
	logLevel   string
	logFormat  string
	debug      bool

	settings *config.Settings
	logger   *zap.SugaredLogger
	engine   *calculation.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "finplan",
		Short: "Personal financial planning CLI",
		Long: "Recommends a portfolio, projects retirement savings and simulates savings goals " +
			"from a short investor profile.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Settings file (YAML)")
	pf.StringVarP(&a.format, "format", "f", config.DefaultOutputFormat, "Output format (console, json, csv, markdown, html, pretty)")
	pf.StringVarP(&a.query, "query", "q", "", "JSONPath expression applied to the JSON result, e.g. $.projectedNestEgg")
	pf.StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", config.DefaultLogFormat, "Log format (console, json)")
	pf.BoolVar(&a.debug, "debug", false, "Shortcut for --log-level debug")

	root.AddCommand(
		portfolioCmd(a),
		retirementCmd(a),
		goalCmd(a),
		solveCmd(a),
		reportCmd(a),
		compareCmd(a),
		validateCmd(a),
		serveCmd(a),
		watchCmd(a),
		versionCmd(),
	)
	return root
}

// setup loads settings, lets explicit flags override them and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		settings.Log.Format = a.logFormat
	}
	if a.debug {
		settings.Log.Level = "debug"
	}
	if flags.Changed("format") {
		settings.Output.Format = a.format
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	a.format = settings.Output.Format
	a.settings = settings

	logger, err := logging.New(logging.Config{Level: settings.Log.Level, Format: settings.Log.Format})
	if err != nil {
		return err
	}
	a.logger = logger
	a.engine = calculation.NewEngine()
	a.engine.SetLogger(logger)
	return nil
}

func (a *app) formatter() (output.Formatter, error) {
	f := output.GetFormatterByName(a.format)
	if f == nil {
		return nil, fmt.Errorf("unknown format %q (available: %v, aliases: %v)",
			a.format, output.AvailableFormatterNames(), output.AvailableFormatAliases())
	}
	return f, nil
}

// emit writes value as JSON for --query and the json format, otherwise it
// renders the partial report with the selected formatter
func (a *app) emit(w io.Writer, value any, report *output.Report) error {
	if a.query != "" {
		data, err := output.Query(value, a.query)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	if f.Name() == "json" {
		return writeJSON(w, value)
	}
	return output.WriteFormatted(w, f, report)
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (a *app) loadProfile(path string) (*domain.Profile, error) {
	profile, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("profile loaded", "path", path, "name", profile.Name)
	return profile, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
