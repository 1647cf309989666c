// cmd/routecipher/main.go
//
// This is the entry point for the routecipher CLI.
//
// Flow:
// 1. Parse flags and load .routecipher/config.yaml (defaults if missing)
// 2. On a terminal with nothing pre-answered, launch the TUI
// 3. Otherwise ask the three questions on stdin and print the ciphertext

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/kingrea/routecipher/internal/cipher"
	"github.com/kingrea/routecipher/internal/config"
	"github.com/kingrea/routecipher/internal/logbook"
	"github.com/kingrea/routecipher/internal/tui"
)

// exitError carries the process exit code for a failed run.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.msg)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	projectDir string
	plain      bool
	quiet      bool
	showGrid   bool

	// overrides cipher.filler from config.yaml for this run; 0 keeps it
	filler byte

	// pre-answered prompts; empty means ask
	message *string
	dims    *string
	dir     *string
}

func (o options) answered() bool {
	return o.message != nil || o.dims != nil || o.dir != nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("routecipher", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.projectDir, "project", "", "project directory holding .routecipher/ (defaults to cwd)")
	fs.BoolVar(&opts.plain, "plain", false, "ask on stdin/stdout instead of starting the TUI")
	fs.BoolVar(&opts.quiet, "quiet", false, "line mode: print only the ciphertext")
	fs.BoolVar(&opts.showGrid, "show-grid", false, "line mode: print the filled grid before the ciphertext")
	message := fs.String("message", "", "message to encrypt (skips the prompt)")
	dims := fs.String("dims", "", "grid dimensions as width,height (skips the prompt)")
	dir := fs.String("dir", "", "direction: c or cc (skips the prompt)")
	filler := fs.String("filler", "", "padding letter for this run (overrides config.yaml)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &exitError{code: 0}
		}
		return opts, &exitError{code: 2}
	}
	if fs.NArg() > 0 {
		return opts, &exitError{code: 2, msg: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "message":
			opts.message = message
		case "dims":
			opts.dims = dims
		case "dir":
			opts.dir = dir
		}
	})
	if *filler != "" {
		b, err := cipher.ParseFiller(*filler)
		if err != nil {
			return opts, &exitError{code: 2, msg: fmt.Sprintf("invalid value for -filler: %v", err)}
		}
		opts.filler = b
	}
	return opts, nil
}

// run encapsulates the CLI so tests can drive it with in-memory streams.
func run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		opts.projectDir = cwd
	}

	if !opts.plain && !opts.answered() && isTerminal(stdin) && isTerminal(stdout) {
		return runTUI(stdout, stderr, opts)
	}

	cfg, err := config.NewConfig(opts.projectDir)
	if err != nil {
		return err
	}
	if opts.filler != 0 {
		cfg.UseFiller(opts.filler)
	}
	// line mode never creates the state dir; it logs only into an existing one
	var lb *logbook.Logbook
	if dirExists(cfg.StateDir) {
		lb = openLogbook(cfg, stderr)
	}
	return runPlain(stdin, stdout, cfg, lb, opts)
}

func runTUI(stdout, stderr io.Writer, opts options) error {
	if err := config.InitDir(opts.projectDir); err != nil {
		return err
	}
	cfg, err := config.NewConfig(opts.projectDir)
	if err != nil {
		return err
	}
	if opts.filler != 0 {
		cfg.UseFiller(opts.filler)
	}
	lb := openLogbook(cfg, stderr)

	p := tea.NewProgram(
		tui.NewApp(cfg, tui.WithLogbook(lb)),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	// leave the last ciphertext in the scrollback once the alt screen closes
	if app, ok := final.(*tui.App); ok && app.Ciphertext() != "" {
		fmt.Fprintln(stdout, app.Ciphertext())
	}
	return nil
}

func openLogbook(cfg *config.Config, stderr io.Writer) *logbook.Logbook {
	if !cfg.LogbookEnabled() {
		return nil
	}
	lb, err := logbook.New(cfg.LogbookPath())
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logbook disabled: %v\n", err)
		return nil
	}
	return lb
}

func isTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func dirExists(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	return err == nil && info.IsDir()
}
