// Command meshcache caches OBJ meshes into packages and restores them.
//
// Usage:
//
//	meshcache [global flags] <command> [args]
//
// Commands:
//
//	cache <file.obj>              write <cache-dir>/<object>.mxo
//	checkpoint <file.obj>         write a timestamped package
//	restore [-o out.obj] <pkg>    restore a package and write it as OBJ
//	inspect <pkg>                 print metadata, digest and entries
//	list [object]                 list packages, or one object's checkpoints
//	purge                         delete every package in the cache dir
//	config                        print the effective configuration
//
// Configuration is read from the -config file, then MESHCACHE_* environment
// variables, then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseGlobalFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stdout, usage)
			return exitOK
		}
		fmt.Fprintf(stderr, "meshcache: %v\n%s", err, usage)
		return exitUsage
	}
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	settings, err := loadSettings(opts)
	if err != nil {
		fmt.Fprintf(stderr, "meshcache: load config: %v\n", err)
		return exitError
	}

	handler, closeLog, err := newLogHandler(stderr, settings.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "meshcache: open log: %v\n", err)
		return exitError
	}
	defer closeLog()

	app, err := newApp(settings, handler, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "meshcache: %v\n", err)
		return exitError
	}

	if err := app.dispatch(ctx, rest[0], rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "meshcache: %v\n%s", err, usage)
			return exitUsage
		}
		fmt.Fprintf(stderr, "meshcache: %s: %v\n", rest[0], err)
		return exitError
	}
	return exitOK
}

const usage = `usage: meshcache [flags] <command> [args]

commands:
  cache <file.obj>             cache an OBJ mesh
  checkpoint <file.obj>        write a timestamped checkpoint
  restore [-o out.obj] <pkg>   restore a package as OBJ (stdout by default)
  inspect <pkg>                print package metadata and entries
  list [object]                list packages or an object's checkpoints
  purge                        delete every package in the cache dir
  config                       print the effective configuration

flags:
  -config path       config file (toml, yaml or json)
  -cache-dir dir     package directory (default: system temp dir)
  -buffering mode    memory | disk
  -strategy mode     parallel | multi | sequential | single
  -compression lvl   better | faster
  -method name       deflate | zstd
  -workers n         parallel restore workers (0 = GOMAXPROCS)
  -debug             debug logging
  -log-file path     write logs to a rotating file instead of stderr
`
