// rdfformat inspects and uses the RDF format registry from the command line.
//
//	rdfformat formats                    list registered formats and aliases
//	rdfformat lookup --ext ld            resolve a symbol, media type, extension or file name
//	rdfformat detect FILE...             report the format of each file
//	rdfformat parse [--format X] FILE    print a document as N-Quads
//	rdfformat convert --to X FILE        re-serialize a document
//
// Configuration is read from --config or the RDFFORMAT_CONFIG environment
// variable.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/yut148/json-ld/config"
	"github.com/yut148/json-ld/jsonld"
	"github.com/yut148/json-ld/rdf"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// usageError marks errors caused by bad invocation.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }
func (e *usageError) ExitCode() int { return 2 }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// env carries what every subcommand needs.
type env struct {
	registry *rdf.Registry
	config   *config.Config
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath, logLevel string

	flagSet := pflag.NewFlagSet("rdfformat", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML or JSONC config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&logLevel, "log-level", "", "override the configured log level")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, flagSet)
			return nil
		}
		return usagef("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printUsage(stdout, flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return usagef("%v", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := rdf.NewRegistry(cfg.RegistryOptions(logger)...)
	if err := jsonld.Register(registry); err != nil {
		return err
	}
	if err := cfg.Apply(registry); err != nil {
		return err
	}

	e := &env{registry: registry, config: cfg, logger: logger, stdin: stdin, stdout: stdout}
	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	switch command {
	case "formats":
		return runFormats(e, rest)
	case "lookup":
		return runLookup(e, rest)
	case "detect":
		return runDetect(e, rest)
	case "parse":
		return runParse(e, rest)
	case "convert":
		return runConvert(e, rest)
	default:
		return usagef("unknown command %q", command)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: rdfformat [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  formats   list registered formats and aliases")
	fmt.Fprintln(w, "  lookup    resolve a symbol, media type, extension or file name")
	fmt.Fprintln(w, "  detect    report the format of each file")
	fmt.Fprintln(w, "  parse     print a document as N-Quads")
	fmt.Fprintln(w, "  convert   re-serialize a document in another format")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fmt.Fprint(w, flagSet.FlagUsages())
}
