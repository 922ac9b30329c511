package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// colorTo reports whether f supports ANSI color output. The NO_COLOR
// convention disables color regardless of the terminal.
func colorTo(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// step prints a progress line.
func step(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// success prints a completion line, green on capable terminals.
func success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if colorTo(os.Stdout) {
		fmt.Println(ansiGreen + msg + ansiReset)
	} else {
		fmt.Println(msg)
	}
}

// fail prints an error line to stderr, red on capable terminals.
func fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if colorTo(os.Stderr) {
		fmt.Fprintln(os.Stderr, ansiRed+"Error: "+msg+ansiReset)
	} else {
		fmt.Fprintln(os.Stderr, "Error: "+msg)
	}
}
