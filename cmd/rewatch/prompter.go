package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// consolePrompter is the interactive capability backed by the terminal. When
// stdin is not a terminal every prompt reports declined, so unattended runs
// skip items instead of hanging.
type consolePrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newConsolePrompter() *consolePrompter {
	fd := os.Stdin.Fd()
	return &consolePrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (p *consolePrompter) SelectOption(ctx context.Context, title string, options []string) (int, bool, error) {
	if !p.interactive {
		return 0, false, nil
	}
	fmt.Fprintf(p.out, "\n%s\n", title)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprintf(p.out, "Choice [1-%d, blank to skip]: ", len(options))

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, false, nil
	}
	choice, ok := parseChoice(line, len(options))
	return choice, ok, nil
}

func (p *consolePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if !p.interactive {
		return false, nil
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// parseChoice maps a 1-based input line to a 0-based option index. Blank or
// out-of-range input is a decline.
func parseChoice(line string, optionCount int) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > optionCount {
		return 0, false
	}
	return choice - 1, true
}
