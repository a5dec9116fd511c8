package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/internal/cliutil"
	"github.com/erraggy/oasmodels/internal/fileutil"
	"github.com/erraggy/oasmodels/internal/pathutil"
	"github.com/erraggy/oasmodels/reader"
	"github.com/erraggy/oasmodels/source"
	"github.com/erraggy/oasmodels/typename"
)

// ReadFlags contains flags for the read command
type ReadFlags struct {
	Output           string
	Format           string
	Group            string
	GenericNaming    string
	Casing           string
	Qualified        bool
	ConflictTemplate string
	Ignore           stringList
	ParallelNaming   bool
	Quiet            bool
	Verbose          bool
}

// SetupReadFlags creates and configures a FlagSet for the read command.
// Returns the FlagSet and a ReadFlags struct with bound flag variables.
func SetupReadFlags() (*flag.FlagSet, *ReadFlags) {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	flags := &ReadFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Group, "group", "", "only output models accepted in this resource group")
	fs.StringVar(&flags.GenericNaming, "generic-naming", "", fmt.Sprintf("generic argument rendering (%s)", strings.Join(typename.ValidGenericNamingStrategies(), ", ")))
	fs.StringVar(&flags.Casing, "casing", "", "name casing (declared, pascal, camel, snake, kebab)")
	fs.BoolVar(&flags.Qualified, "qualified", false, "prefix model names with their package")
	fs.StringVar(&flags.ConflictTemplate, "conflict-template", "", "text/template used to rename conflicting model names")
	fs.Var(&flags.Ignore, "ignore", "type expression to ignore on every operation (repeatable)")
	fs.BoolVar(&flags.ParallelNaming, "parallel-naming", false, "finalize names per group concurrently")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output models, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output models, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log merge progress to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodels read [flags] <manifest|->\n\n")
		Writef(fs.Output(), "Read the data models of an API manifest, deduplicated across resource groups.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable model listing per group\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodels read api.yaml\n")
		Writef(fs.Output(), "  oasmodels read --format json -o models.json api.yaml\n")
		Writef(fs.Output(), "  oasmodels read --generic-naming of --casing pascal api.yaml\n")
		Writef(fs.Output(), "  oasmodels read --ignore 'Page<Order>' --group orders api.yaml\n")
		Writef(fs.Output(), "  cat api.yaml | oasmodels read -q --format yaml -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Models read successfully\n")
		Writef(fs.Output(), "  1    The manifest could not be read or merged\n")
	}

	return fs, flags
}

// HandleRead executes the read command
func HandleRead(args []string) error {
	fs, flags := SetupReadFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("read command requires exactly one manifest path or '-' for stdin")
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	manifestPath := fs.Arg(0)
	startTime := time.Now()
	result, err := readManifest(context.Background(), manifestPath, flags)
	if err != nil {
		return err
	}
	readTime := time.Since(startTime)

	views := result.Views()
	if flags.Group != "" {
		views = filterGroups(views, flags.Group)
		if len(views) == 0 {
			return fmt.Errorf("group %q not found", flags.Group)
		}
	}

	if !flags.Quiet {
		Writef(os.Stderr, "oasmodels version: %s\n", oasmodels.Version())
		Writef(os.Stderr, "Manifest: %s\n", FormatManifestPath(manifestPath))
		outputReadStats(os.Stderr, result.Stats, readTime)
		if len(result.Warnings) > 0 {
			Writef(os.Stderr, "\nWarnings (%d):\n", len(result.Warnings))
			for _, w := range result.Warnings {
				Writef(os.Stderr, "  - %s\n", w)
			}
		}
		Writef(os.Stderr, "\n")
	}

	if flags.Output == "" {
		return writeViews(os.Stdout, views, flags.Format)
	}

	cleaned, err := pathutil.SanitizeOutputPath(flags.Output)
	if err != nil {
		return err
	}
	if manifestPath != StdinFilePath {
		if err := pathutil.CheckOverwrite(cleaned, manifestPath); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(cleaned, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.OwnerReadWrite)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeViews(f, views, flags.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	if !flags.Quiet {
		Writef(os.Stderr, "Output written to: %s\n", cleaned)
	}
	return nil
}

// readManifest loads the manifest at path (or stdin) and runs a read pass.
func readManifest(ctx context.Context, path string, flags *ReadFlags) (*reader.ReadResult, error) {
	var manifest *source.Manifest
	var err error
	if path == StdinFilePath {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return nil, fmt.Errorf("reading stdin: %w", readErr)
		}
		manifest, err = source.ParseManifest(data)
	} else {
		manifest, err = source.LoadManifest(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	manifest.Ignorable = append(manifest.Ignorable, flags.Ignore...)

	catalog, err := manifest.Catalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	src := source.New(catalog)
	scan, err := manifest.Scan(src)
	if err != nil {
		return nil, fmt.Errorf("scanning operations: %w", err)
	}
	ignorable, err := manifest.IgnorableTypes(src)
	if err != nil {
		return nil, fmt.Errorf("parsing ignorable types: %w", err)
	}

	opts, err := flags.readerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, reader.WithIgnorableTypes(ignorable...))

	r, err := reader.New(src, source.NewProvider(src), opts...)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, scan)
}

// readerOptions translates naming and logging flags into reader options.
func (f *ReadFlags) readerOptions() ([]reader.Option, error) {
	nc := typename.DefaultConfig()
	if f.GenericNaming != "" {
		st, err := typename.ParseGenericNamingStrategy(f.GenericNaming)
		if err != nil {
			return nil, err
		}
		nc.Generic = st
	}
	if f.Casing != "" {
		c, err := typename.ParseCasing(f.Casing)
		if err != nil {
			return nil, err
		}
		nc.Casing = c
	}
	nc.Qualified = f.Qualified

	opts := []reader.Option{
		reader.WithNamer(typename.New(nc)),
		reader.WithParallelNaming(f.ParallelNaming),
		reader.WithLogger(reader.NewSlogAdapter(cliutil.NewLogger(os.Stderr, f.Verbose, f.Quiet))),
	}
	if f.ConflictTemplate != "" {
		opts = append(opts, reader.WithConflictTemplate(f.ConflictTemplate))
	}
	return opts, nil
}

func filterGroups(views []reader.GroupView, name string) []reader.GroupView {
	var filtered []reader.GroupView
	for _, gv := range views {
		if strings.EqualFold(gv.Group, name) {
			filtered = append(filtered, gv)
		}
	}
	return filtered
}

func outputReadStats(w io.Writer, stats reader.Stats, readTime time.Duration) {
	Writef(w, "Groups: %d\n", stats.Groups)
	Writef(w, "Operations: %d\n", stats.Operations)
	Writef(w, "Models: %d canonical, %d deduplicated\n", stats.Canonical, stats.Deduplicated)
	Writef(w, "Read Time: %v\n", readTime)
}

// writeViews renders the views in the requested format.
func writeViews(w io.Writer, views []reader.GroupView, format string) error {
	if format != FormatText {
		return OutputStructured(w, views, format)
	}
	for i, gv := range views {
		if i > 0 {
			Writef(w, "\n")
		}
		if gv.Description != "" {
			Writef(w, "%s (%s)\n", gv.Group, gv.Description)
		} else {
			Writef(w, "%s\n", gv.Group)
		}
		for _, mv := range gv.Models {
			Writef(w, "  %s [%s]\n", mv.Name, mv.Type)
			if mv.BaseModel != "" {
				Writef(w, "    extends %s\n", mv.BaseModel)
			}
			for _, p := range mv.Properties {
				if p.Required {
					Writef(w, "    %s: %s (required)\n", p.Name, p.Type)
				} else {
					Writef(w, "    %s: %s\n", p.Name, p.Type)
				}
			}
		}
	}
	return nil
}
