// Package main is the entry point for the caide command.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/command"
	"github.com/dshills/caide/internal/feature"
	"github.com/dshills/caide/internal/transport"
	"github.com/dshills/caide/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var dir string
	var level string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&dir, "dir", ".", "Workspace directory")
	flag.StringVar(&dir, "d", ".", "Workspace directory (shorthand)")
	flag.StringVar(&level, "verbosity", "normal", "Verbosity (quiet, normal, verbose)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return 0
	}
	if showVersion {
		fmt.Printf("caide %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	verbosity := app.ParseVerbosity(level)
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	if err := dispatch(verbosity, dir, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func dispatch(verbosity app.Verbosity, dir, cmd string, args []string) error {
	switch cmd {
	case "init":
		return command.Init(verbosity, dir)

	case "problem":
		if len(args) < 1 {
			return fmt.Errorf("usage: caide problem <name> [type]")
		}
		typeSpec := ""
		if len(args) > 1 {
			typeSpec = args[1]
		}
		reg, err := feature.LoadDir(dir)
		if err != nil {
			return err
		}
		defer reg.Close()
		id, err := command.AddProblem(verbosity, dir, args[0], typeSpec, reg)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil

	case "checkout":
		if len(args) != 1 {
			return fmt.Errorf("usage: caide checkout <id>")
		}
		reg, err := feature.LoadDir(dir)
		if err != nil {
			return err
		}
		defer reg.Close()
		return command.Checkout(verbosity, dir, args[0], reg)

	case "list":
		ids, err := command.List(verbosity, dir)
		if err != nil {
			return err
		}
		active, err := command.ActiveProblem(verbosity, dir)
		if err != nil {
			return err
		}
		for _, id := range ids {
			marker := " "
			if id == active {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, id)
		}
		return nil

	case "archive":
		if len(args) != 1 {
			return fmt.Errorf("usage: caide archive <id>")
		}
		return command.Archive(verbosity, dir, args[0])

	case "prop":
		return propCommand(verbosity, dir, args)

	case "serve":
		return serve(verbosity)

	case "watch":
		return watchWorkspace(verbosity, dir)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func propCommand(verbosity app.Verbosity, dir string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: caide prop get|set <file> <section> <key> [value]")
	}
	switch args[0] {
	case "get":
		if len(args) != 4 {
			return fmt.Errorf("usage: caide prop get <file> <section> <key>")
		}
		value, err := command.GetProperty(verbosity, dir, args[1], args[2], args[3])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	case "set":
		if len(args) != 5 {
			return fmt.Errorf("usage: caide prop set <file> <section> <key> <value>")
		}
		return command.SetProperty(verbosity, dir, args[1], args[2], args[3], args[4])
	default:
		return fmt.Errorf("unknown prop action %q", args[0])
	}
}

// serve runs the native-messaging transport on stdin/stdout. The
// workspace root arrives with each request, so features are loaded per
// request root lazily through the dispatcher's handler.
func serve(verbosity app.Verbosity) error {
	handler := func(req transport.Request) (string, error) {
		reg, err := feature.LoadDir(req.Root)
		if err != nil {
			return "", err
		}
		defer reg.Close()
		return command.Dispatch(verbosity, reg)(req)
	}
	log := app.NewLogger(verbosity, os.Stderr)
	return transport.NewServer(os.Stdin, os.Stdout, handler, log).Serve()
}

// watchWorkspace re-validates the active problem's config whenever
// files under its directory change. Each trigger is an independent
// invocation.
func watchWorkspace(verbosity app.Verbosity, dir string) error {
	log := app.NewLogger(verbosity, os.Stderr)
	active, err := command.ActiveProblem(verbosity, dir)
	if err != nil {
		return err
	}
	if active == "" {
		return fmt.Errorf("no active problem to watch")
	}

	w, err := watch.New(func(paths []string) {
		log.Info("%d change(s) in %s", len(paths), active)
		if _, err := command.ReadProblem(verbosity, dir, active); err != nil {
			log.Error("problem config invalid: %v", err)
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Join(dir, active)); err != nil {
		return err
	}
	log.Info("watching %s", active)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return w.LastErr()
}

func usage() {
	fmt.Fprintf(os.Stderr, "caide - competitive programming assistant\n\n")
	fmt.Fprintf(os.Stderr, "Usage: caide [options] <command> [args]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  init                       Initialize a workspace\n")
	fmt.Fprintf(os.Stderr, "  problem <name> [type]      Create a problem and make it active\n")
	fmt.Fprintf(os.Stderr, "  checkout <id>              Switch the active problem\n")
	fmt.Fprintf(os.Stderr, "  list                       List problems\n")
	fmt.Fprintf(os.Stderr, "  archive <id>               Move a problem to the archive\n")
	fmt.Fprintf(os.Stderr, "  prop get|set ...           Read or write a config property\n")
	fmt.Fprintf(os.Stderr, "  serve                      Run the native-messaging server on stdio\n")
	fmt.Fprintf(os.Stderr, "  watch                      Re-check the active problem on file changes\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  caide init                            Initialize the current directory\n")
	fmt.Fprintf(os.Stderr, "  caide problem \"A. Theatre Square\"     Create a stream problem\n")
	fmt.Fprintf(os.Stderr, "  caide problem Sum topcoder,Sum,s:int,a:vint\n")
	fmt.Fprintf(os.Stderr, "  caide -d ./contest checkout A_Theatre_Square\n")
}
