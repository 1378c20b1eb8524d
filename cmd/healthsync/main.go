package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/suparena/healthprofile"
)

const usage = `usage: healthsync [flags] <command> [args]

commands:
  metadata <file>        print the metadata of a profile document
  import <file>          save the records of a profile document to the store
  clean                  delete every record this source wrote to the store
  export <dir> <name>    write the stored records to <dir>/<name>.json

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "healthsync:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("healthsync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	versionFlag := fs.Bool("version", false, "Show version information")
	vFlag := fs.Bool("v", false, "Show version information (short)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *versionFlag || *vFlag {
		info := healthprofile.GetVersionInfo()
		fmt.Fprintf(stdout, "healthsync version %s\n", info.Version)
		fmt.Fprintf(stdout, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(stdout, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(stdout, "Go version: %s\n", info.GoVersion)
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	app, err := newApp(*configPath, stdout)
	if err != nil {
		return err
	}
	defer func() { _ = app.log.Sync() }()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "metadata":
		if len(rest) != 1 {
			return fmt.Errorf("usage: healthsync metadata <file>")
		}
		return app.metadata(rest[0])
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("usage: healthsync import <file>")
		}
		return app.importFile(ctx, rest[0])
	case "clean":
		if len(rest) != 0 {
			return fmt.Errorf("usage: healthsync clean")
		}
		return app.clean(ctx)
	case "export":
		if len(rest) != 2 {
			return fmt.Errorf("usage: healthsync export <dir> <name>")
		}
		return app.export(ctx, rest[0], rest[1])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
