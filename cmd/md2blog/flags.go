package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

// Setup modes.
const (
	modeLocal  = "local"
	modeServer = "server"
)

// defaultEnvFile is read from the working directory when present.
const defaultEnvFile = ".env"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// renderFlags holds markdown rendering flags.
type renderFlags struct {
	highlight         bool
	highlightSet      bool // --highlight given explicitly
	highlightStyle    string
	previewParagraphs int
}

// publishFlags holds all flags for the publish command.
type publishFlags struct {
	common commonFlags
	render renderFlags
}

// removeFlags holds all flags for the remove command.
type removeFlags struct {
	common commonFlags
}

// setupFlags holds all flags for the setup command.
type setupFlags struct {
	common    commonFlags
	mode      string
	root      string
	title     string
	tagline   string
	assetPath string
	style     string
	template  string
	force     bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	render   renderFlags
	debounce time.Duration
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", defaultEnvFile, "dotenv file with MD2BLOG_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostics")
}

// addRenderFlags adds markdown rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for highlighted code")
	fs.IntVarP(&f.previewParagraphs, "preview-paragraphs", "n", 0, "paragraphs kept in homepage previews (0 = config)")
}

// newFlagSet creates a FlagSet printing usage to w on errors.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse and wraps errors as usage errors. flag.ErrHelp is
// returned as is.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// parsePublishFlags parses publish command flags.
func parsePublishFlags(args []string, w io.Writer) (*publishFlags, error) {
	f := &publishFlags{}
	fs := newFlagSet("publish", w, printPublishUsage)
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: publish takes no arguments, got %q", ErrUsage, fs.Args())
	}
	f.render.highlightSet = fs.Changed("highlight")
	return f, nil
}

// parseRemoveFlags parses remove command flags and returns the title words.
func parseRemoveFlags(args []string, w io.Writer) (*removeFlags, []string, error) {
	f := &removeFlags{}
	fs := newFlagSet("remove", w, printRemoveUsage)
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseSetupFlags parses setup command flags.
func parseSetupFlags(args []string, w io.Writer) (*setupFlags, error) {
	f := &setupFlags{}
	fs := newFlagSet("setup", w, printSetupUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.mode, "mode", "m", modeLocal, "layout: local (everything in the working directory) or server")
	fs.StringVar(&f.root, "root", "", "web root directory (server mode prompts when empty)")
	fs.StringVar(&f.title, "title", "", "blog title (prompted when empty)")
	fs.StringVar(&f.tagline, "tagline", "", "blog tagline")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/ and templates/")
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.template, "template", "", "homepage template name")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing homepage and stylesheet")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if f.mode != modeLocal && f.mode != modeServer {
		return nil, fmt.Errorf("%w: --mode must be %s or %s, got %q", ErrUsage, modeLocal, modeServer, f.mode)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: setup takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, w io.Writer) (*watchFlags, error) {
	f := &watchFlags{}
	fs := newFlagSet("watch", w, printWatchUsage)
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	fs.DurationVar(&f.debounce, "debounce", 0, "quiet period before publishing (e.g. 500ms, 2s)")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: watch takes no arguments, got %q", ErrUsage, fs.Args())
	}
	if f.debounce < 0 {
		return nil, fmt.Errorf("%w: --debounce must be positive, got %v", ErrUsage, f.debounce)
	}
	f.render.highlightSet = fs.Changed("highlight")
	return f, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
