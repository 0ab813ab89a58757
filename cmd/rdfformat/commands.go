package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/yut148/json-ld/rdf"
)

func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return flagSet
}

func parseFlags(flagSet *pflag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return usagef("%s: %v", flagSet.Name(), err)
	}
	return nil
}

func runFormats(e *env, args []string) error {
	if err := parseFlags(newFlagSet("formats"), args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tMEDIA TYPES\tEXTENSIONS\tENCODING\tSNIFF")
	for _, entry := range e.registry.Entries() {
		mediaTypes := entry.MediaType
		extensions := ""
		sniff := "alias"
		if entry.Descriptor != nil {
			mediaTypes = strings.Join(append([]string{entry.MediaType}, entry.Descriptor.AliasMediaTypes...), ",")
			extensions = strings.Join(entry.Descriptor.Extensions, ",")
			sniff = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", dash(entry.Symbol), dash(mediaTypes), dash(extensions), dash(entry.Encoding), sniff)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func runLookup(e *env, args []string) error {
	var q rdf.Query
	flagSet := newFlagSet("lookup")
	flagSet.StringVar(&q.Symbol, "symbol", "", "format symbol")
	flagSet.StringVar(&q.MediaType, "media-type", "", "media type or Content-Type header value")
	flagSet.StringVar(&q.Extension, "ext", "", "file-name extension")
	flagSet.StringVar(&q.FileName, "file", "", "file name whose extension is used")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if q.Symbol == "" && q.MediaType == "" && q.Extension == "" && q.FileName == "" {
		return usagef("lookup: one of --symbol, --media-type, --ext or --file is required")
	}

	entry, err := e.registry.Resolve(q)
	if err != nil {
		return err
	}
	printEntry(e.stdout, entry)
	return nil
}

func printEntry(w io.Writer, entry *rdf.Entry) {
	fmt.Fprintf(w, "symbol:     %s\n", entry.Symbol)
	fmt.Fprintf(w, "media type: %s\n", dash(entry.MediaType))
	fmt.Fprintf(w, "encoding:   %s\n", dash(entry.Encoding))
	if entry.IsAlias() {
		fmt.Fprintln(w, "alias:      yes")
		return
	}
	fmt.Fprintf(w, "extensions: %s\n", strings.Join(entry.Descriptor.Extensions, ", "))
}

func runDetect(e *env, args []string) error {
	var sniffOnly bool
	flagSet := newFlagSet("detect")
	flagSet.BoolVar(&sniffOnly, "sniff", false, "ignore file names and sniff content only")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return usagef("detect: at least one file is required")
	}

	failed := 0
	for _, path := range flagSet.Args() {
		symbol, method, err := detectFile(e, path, sniffOnly)
		if err != nil {
			e.logger.Warn("detection failed", "file", path, "error", err)
			fmt.Fprintf(e.stdout, "%s\t-\t%v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(e.stdout, "%s\t%s\t%s\n", path, symbol, method)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files not recognized", failed, flagSet.NArg())
	}
	return nil
}

func detectFile(e *env, path string, sniffOnly bool) (string, string, error) {
	if !sniffOnly {
		if entry, ok := e.registry.ForFileName(path); ok {
			return entry.Symbol, "extension", nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	entry, _, err := e.registry.Detect(f)
	if err != nil {
		return "", "", err
	}
	return entry.Symbol, "content", nil
}

// openInput opens path, or stdin for "-".
func openInput(e *env, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(e.stdin), nil
	}
	return os.Open(path)
}

// inputQuery describes an input to the registry. An explicit format must be
// a registered symbol; otherwise the file name and then the content decide.
func inputQuery(e *env, command, path, format string) (rdf.Query, error) {
	if format != "" {
		if _, ok := e.registry.ForSymbol(format); !ok {
			return rdf.Query{}, usagef("%s: unknown input format %q", command, format)
		}
	}
	q := rdf.Query{Symbol: format}
	if path != "-" {
		q.FileName = path
	}
	return q, nil
}

func runParse(e *env, args []string) error {
	var format, base string
	var maxQuads int64
	flagSet := newFlagSet("parse")
	flagSet.StringVarP(&format, "format", "f", "", "input format symbol (default: detect)")
	flagSet.StringVar(&base, "base", "", "base IRI")
	flagSet.Int64Var(&maxQuads, "max-quads", 0, "stop with an error after this many quads (0 = unlimited)")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usagef("parse: exactly one file is required")
	}
	path := flagSet.Arg(0)
	query, err := inputQuery(e, "parse", path, format)
	if err != nil {
		return err
	}

	in, err := openInput(e, path)
	if err != nil {
		return err
	}
	defer in.Close()

	count := 0
	err = e.registry.Parse(context.Background(), in, query, func(q rdf.Quad) error {
		count++
		_, err := fmt.Fprintln(e.stdout, q.String())
		return err
	}, rdf.OptBaseIRI(base), rdf.OptMaxQuads(maxQuads))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	e.logger.Info("parsed", "file", path, "quads", count)
	return nil
}

func runConvert(e *env, args []string) error {
	var from, to, base string
	var prefixes map[string]string
	flagSet := newFlagSet("convert")
	flagSet.StringVar(&from, "from", "", "input format symbol (default: detect)")
	flagSet.StringVar(&to, "to", "", "output format symbol or media type")
	flagSet.StringVar(&base, "base", "", "base IRI")
	flagSet.StringToStringVar(&prefixes, "prefix", nil, "prefix=IRI pairs used to abbreviate output")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if to == "" {
		return usagef("convert: --to is required")
	}
	if flagSet.NArg() != 1 {
		return usagef("convert: exactly one file is required")
	}
	path := flagSet.Arg(0)
	query, err := inputQuery(e, "convert", path, from)
	if err != nil {
		return err
	}

	merged := make(map[string]string, len(e.config.Prefixes)+len(prefixes))
	for k, v := range e.config.Prefixes {
		merged[k] = v
	}
	for k, v := range prefixes {
		merged[k] = v
	}

	writer, _, err := e.registry.NewWriter(e.stdout, rdf.Query{Symbol: to, MediaType: to}, rdf.OptPrefixes(merged))
	if err != nil {
		if errors.Is(err, rdf.ErrFormatNotFound) {
			return usagef("convert: unknown output format %q", to)
		}
		return err
	}

	in, err := openInput(e, path)
	if err != nil {
		return err
	}
	defer in.Close()

	err = e.registry.Parse(context.Background(), in, query, writer.Write, rdf.OptBaseIRI(base))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writer.Close()
}
