// Command schemap analyzes groups of schemaless documents and generates
// an aggregate schema profile for them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/datprof/schemap/internal/analyze"
	"github.com/datprof/schemap/internal/config"
	"github.com/datprof/schemap/internal/logging"
	"github.com/datprof/schemap/pkg/profile"
)

const version = "0.4.1"

const usage = `usage: schemap <command> [flags]

commands:
  analyze   analyze documents and generate a schema profile
  version   print the version and exit

run "schemap analyze -h" for the analyze flags.
`

func main() {
	// A .env file can hold the SCHEMAP_* defaults; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		os.Exit(runAnalyze(os.Args[2:]))
	case "version":
		fmt.Printf("schemap %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "schemap: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var (
		configPath string
		output     string
		check      bool
	)
	fs.StringVar(&configPath, "config", os.Getenv("SCHEMAP_CONFIG"),
		"path to the analysis configuration file (env: $SCHEMAP_CONFIG)")
	fs.StringVar(&configPath, "c", os.Getenv("SCHEMAP_CONFIG"), "shorthand for -config")
	fs.StringVar(&output, "output", "", "write the schema profile to a file instead of stdout")
	fs.StringVar(&output, "o", "", "shorthand for -output")
	fs.BoolVar(&check, "check", false, "validate the serialized profile against the wire schema")
	fs.Parse(args)

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "schemap: a configuration file is required (-c or $SCHEMAP_CONFIG)")
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemap: %v\n", err)
		return 2
	}

	cleanup, err := logging.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemap: setting up logging: %v\n", err)
		return 2
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, err := cfg.BuildLoader()
	if err != nil {
		slog.Error("failed to build document loader", "error", err)
		return 2
	}

	result, err := analyze.New(src, analyze.Options{
		TextLimit:     cfg.Analyze.TextLimit,
		DiscreteLimit: cfg.Analyze.DiscreteLimit,
		Workers:       cfg.Analyze.Workers,
	}).Run(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		return 1
	}

	if err := writeProfile(result, output, check); err != nil {
		slog.Error("failed to write profile", "error", err)
		return 1
	}
	return 0
}

func writeProfile(p *profile.Profile, output string, check bool) error {
	if check {
		data, err := p.MarshalJSON()
		if err != nil {
			return err
		}
		if err := profile.ValidateWire(data); err != nil {
			return err
		}
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return p.Dump(w)
}
