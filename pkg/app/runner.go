package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-glaze/glaze/pkg/minify"
)

// Main drives a from the command line: "serve" starts the dev server,
// "freeze" writes the static site. It exits the process with the run's
// status code, stopping a running server cleanly on interrupt.
func Main(a *App) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(Run(ctx, a, os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes one command line invocation against a and returns its
// exit code. Flags override the corresponding option on a.
func Run(ctx context.Context, a *App, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "usage: %s serve|freeze [flags]\n", filepath.Base(os.Args[0]))
		return 2
	}

	switch args[0] {
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		fs.SetOutput(stderr)
		addr := fs.String("addr", "", "listen address")
		watch := fs.String("watch", "", "source directory to watch for live reload")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *addr != "" {
			a.opts.Addr = *addr
		}
		if *watch != "" {
			a.opts.WatchDir = *watch
		}
		if err := a.Serve(ctx); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0

	case "freeze":
		fs := flag.NewFlagSet("freeze", flag.ContinueOnError)
		fs.SetOutput(stderr)
		out := fs.String("out", "dist", "output directory")
		cache := fs.String("cache", "", "page cache file")
		compiler := fs.String("compiler", "", "external minifier command")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *cache != "" {
			if err := os.MkdirAll(filepath.Dir(*cache), 0o755); err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			a.opts.StorePath = *cache
		}
		if *compiler != "" {
			parts := strings.Fields(*compiler)
			a.opts.Compiler = minify.NewExternal(parts[0], parts[1:]...)
		}
		results, err := a.FreezeTo(ctx, *out)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		for _, page := range results {
			status := "compiled"
			if page.Cached {
				status = "cached"
			}
			fmt.Fprintf(stdout, "%-8s %s -> %s\n", status, page.Route, page.Path)
		}
		return 0

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		return 2
	}
}
