package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kingrea/routecipher/internal/cipher"
	"github.com/kingrea/routecipher/internal/config"
	"github.com/kingrea/routecipher/internal/logbook"
)

const (
	promptMessage    = "Input string to be encrypted: "
	promptDimensions = "Enter dimensions (#,#): "
	promptDirection  = "Enter a direction ('c' for clockwise or 'cc' for counter-clockwise): "
)

// runPlain reads the three answers, then parses the dimensions, fills the
// grid and parses the direction, in that order. Invalid dimensions or an
// unknown direction end the run with exit code 1 and no ciphertext.
func runPlain(stdin io.Reader, stdout io.Writer, cfg *config.Config, lb *logbook.Logbook, opts options) error {
	in := bufio.NewReader(stdin)
	ask := func(answer *string, prompt string) (string, error) {
		if answer != nil {
			return *answer, nil
		}
		if !opts.quiet {
			fmt.Fprint(stdout, prompt)
		}
		return readLine(in)
	}

	message, err := ask(opts.message, promptMessage)
	if err != nil {
		return err
	}
	dims, err := ask(opts.dims, promptDimensions)
	if err != nil {
		return err
	}
	token, err := ask(opts.dir, promptDirection)
	if err != nil {
		return err
	}

	run := lb.StartRun()
	width, height, err := cipher.ParseDimensions(dims)
	if err != nil {
		run.Error("Rejected dimensions %q: %v", dims, err)
		return &exitError{code: 1, msg: fmt.Sprintf("Error: %v", err)}
	}
	grid, err := cipher.Fill(message, width, height, cipher.WithFiller(cfg.Filler()))
	if err != nil {
		run.Error("Fill failed: %v", err)
		return &exitError{code: 1, msg: fmt.Sprintf("Error: %v", err)}
	}
	dir, err := cipher.ParseDirection(token)
	if err != nil {
		run.Error("Rejected direction %q", strings.TrimSpace(token))
		return &exitError{code: 1, msg: "Unknown direction, try (c) or (cc) for clockwise or counter-clockwise"}
	}

	ciphertext := cipher.Encrypt(grid, dir)
	run.Info("Encrypted %dx%d %s · %d cells", width, height, dir, len(ciphertext))

	out := bufio.NewWriter(stdout)
	if !opts.quiet {
		fmt.Fprintln(out)
	}
	if opts.showGrid {
		fmt.Fprintln(out, grid)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, ciphertext)
	if err := out.Flush(); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as is; EOF with nothing read is an empty
// answer.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
