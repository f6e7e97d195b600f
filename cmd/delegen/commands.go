package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"delegen/internal/analyze"
	"delegen/internal/classdef"
	"delegen/internal/config"
	"delegen/internal/diagnostic"
	"delegen/internal/model"
	"delegen/internal/plan"
	"delegen/internal/render"
)

// errFailed signals a failure already reported to the user.
var errFailed = errors.New("failed")

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"analyze", "derive class definitions from Go packages", runAnalyze},
	{"check", "validate class definitions and plan every class", runCheck},
	{"plan", "write delegation plans", runPlan},
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stderr)

		if len(args) == 0 {
			return 2
		}

		return 0
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		if err := c.run(args[1:], stdout, stderr); err != nil {
			if !errors.Is(err, errFailed) && !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}

			if errors.Is(err, flag.ErrHelp) {
				return 0
			}

			return 1
		}

		return 0
	}

	fmt.Fprintf(stderr, "Unknown command %q\n\n", args[0])
	usage(stderr)

	return 2
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: delegen <command> [options]\n\nCommands:\n")

	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}

	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  delegen analyze -out classes.yaml ./pkg/...\n")
	fmt.Fprintf(w, "  delegen check -model classes.yaml\n")
	fmt.Fprintf(w, "  delegen plan -model classes.yaml -format text -out gen\n")
}

// commonFlags are shared by every command.
type commonFlags struct {
	configPath string
	verbosity  int
}

func newFlagSet(name string, stderr io.Writer, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cf.configPath, "config", "", "path to delegen.toml (default: search upwards from the working directory)")
	fs.IntVar(&cf.verbosity, "v", -1, "log verbosity, overrides the config file (-1: keep)")

	return fs
}

// setup loads the configuration and configures logging.
func setup(cf *commonFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if cf.configPath != "" {
		cfg, err = config.LoadFile(cf.configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}

	if err != nil {
		return nil, err
	}

	verbosity := cfg.Log.Verbosity
	if cf.verbosity >= 0 {
		verbosity = cf.verbosity
	}

	commonlog.Configure(verbosity, cfg.LogPath())

	if cfg.Dir != "" {
		log.Infof("using configuration from %s", cfg.Dir)
	}

	return cfg, nil
}

func runAnalyze(args []string, stdout, stderr io.Writer) error {
	var cf commonFlags

	fs := newFlagSet("analyze", stderr, &cf)
	out := fs.String("out", "", "write class definitions to this file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return errors.New("analyze: at least one package pattern is required")
	}

	if _, err := setup(&cf); err != nil {
		return err
	}

	f, err := analyze.NewAnalyzer().LoadPackages(fs.Args()...)
	if err != nil {
		return err
	}

	if *out != "" {
		return classdef.WriteFile(f, *out)
	}

	data, err := classdef.Marshal(f)
	if err != nil {
		return err
	}

	_, err = stdout.Write(data)

	return err
}

// loadModels validates the class-definition file and builds its models.
// Diagnostics go to stderr; errors among them fail the command.
func loadModels(path string, stderr io.Writer) ([]*model.ClassModel, diagnostic.Diagnostics, error) {
	f, err := classdef.LoadFile(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	diags := *classdef.Validate(f)
	if diags.HasErrors() {
		printDiagnostics(stderr, diags)

		return nil, diags, errFailed
	}

	models, err := classdef.Build(f)
	if err != nil {
		return nil, diags, err
	}

	return models, diags, nil
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	var cf commonFlags

	fs := newFlagSet("check", stderr, &cf)
	modelPath := fs.String("model", "", "class-definition YAML file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modelPath == "" {
		return errors.New("check: -model is required")
	}

	cfg, err := setup(&cf)
	if err != nil {
		return err
	}

	models, diags, err := loadModels(*modelPath, stderr)
	if err != nil {
		return err
	}

	planner := plan.NewPlanner(cfg.PlanConfig())

	// Plan one class at a time so every failing class is reported.
	for _, cm := range models {
		p, err := planner.Plan(cm)
		if err != nil {
			var perr *plan.Error
			if !errors.As(err, &perr) {
				return err
			}

			diags.Add(perr.Diagnostic())

			continue
		}

		diags.Merge(p.Diagnostics)
	}

	printDiagnostics(stderr, diags)

	if diags.HasErrors() || (cfg.Planner.Strict && diags.HasWarnings()) {
		return errFailed
	}

	fmt.Fprintf(stdout, "%s: %d classes OK\n", *modelPath, len(models))

	return nil
}

func runPlan(args []string, stdout, stderr io.Writer) error {
	var cf commonFlags

	fs := newFlagSet("plan", stderr, &cf)
	modelPath := fs.String("model", "", "class-definition YAML file")
	format := fs.String("format", "", "output format: yaml, cbor or text (default from config)")
	outDir := fs.String("out", "", "output directory (default from config, else stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modelPath == "" {
		return errors.New("plan: -model is required")
	}

	cfg, err := setup(&cf)
	if err != nil {
		return err
	}

	if *format != "" {
		cfg.Output.Format = *format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	models, diags, err := loadModels(*modelPath, stderr)
	if err != nil {
		return err
	}

	printDiagnostics(stderr, diags)

	plans, err := plan.NewPlanner(cfg.PlanConfig()).PlanAll(context.Background(), models, cfg.Planner.Workers)
	if err != nil {
		return err
	}

	for _, p := range plans {
		printDiagnostics(stderr, p.Diagnostics)

		if cfg.Planner.Strict && p.Diagnostics.HasWarnings() {
			return fmt.Errorf("%s: warnings in strict mode", p.Class)
		}
	}

	files, err := encodePlans(plans, cfg.Output.Format, stemOf(*modelPath))
	if err != nil {
		return err
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.OutputDir()
	}

	if dir == "" {
		for _, f := range files {
			if _, err := stdout.Write(f.Content); err != nil {
				return err
			}
		}

		return nil
	}

	if err := render.WriteFiles(files, dir); err != nil {
		return err
	}

	log.Infof("wrote %d files to %s", len(files), dir)

	return nil
}

// encodePlans produces one file for yaml and cbor, one listing per class for text.
func encodePlans(plans []*plan.Plan, format, stem string) ([]render.GeneratedFile, error) {
	switch format {
	case config.FormatYAML:
		data, err := plan.ExportYAML(plans...)
		if err != nil {
			return nil, err
		}

		return []render.GeneratedFile{{Filename: stem + ".plan.yaml", Content: data}}, nil

	case config.FormatCBOR:
		data, err := plan.MarshalCBOR(plans...)
		if err != nil {
			return nil, err
		}

		return []render.GeneratedFile{{Filename: stem + ".plan.cbor", Content: data}}, nil

	case config.FormatText:
		return render.NewRenderer(render.DefaultConfig()).RenderAll(plans)

	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func stemOf(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	var buf bytes.Buffer

	for _, list := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			fmt.Fprintf(&buf, "%s: %s\n", diag.Severity, diag)
		}
	}

	_, _ = w.Write(buf.Bytes())
}
