package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ManouchehrRasoulli/fscommander/pkg"
	"github.com/ManouchehrRasoulli/fscommander/pkg/logger"
	flag "github.com/spf13/pflag"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("fscommander", flag.ContinueOnError)
	config := flags.StringP("config", "c", "config.yml", "specify configuration file for service.")
	file := flags.StringP("file", "f", "", "command file to watch (default ./command.txt).")
	mode := flags.String("mode", "", "read mode: tail or replay.")
	grammar := flags.String("grammar", "", "command grammar: strict or legacy.")
	root := flags.String("root", "", "resolve command paths inside this directory.")
	noColor := flags.Bool("no-color", false, "disable colored output.")
	verbose := flags.BoolP("verbose", "v", false, "log ignored lines and dispatched commands.")
	showVersion := flags.Bool("version", false, "show version and exit.")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}

	if *showVersion {
		fmt.Printf("fscommander %s\n", version)
		return 0
	}

	lg := log.New(os.Stdout, "fscommander --> ", 1|4)
	clg := logger.NewColorLogger(lg)

	cfg, err := pkg.ReadConfig(*config)
	if err != nil {
		clg.Printcf(logger.ColorRed, "error fscommander : got error %v on reading configuration file %s", err, *config)
		return 1
	}
	if err = cfg.ApplyEnv(); err != nil {
		clg.Printcf(logger.ColorRed, "error fscommander : %v", err)
		return 1
	}

	if flags.Changed("file") {
		cfg.File = *file
	}
	if flags.Changed("mode") {
		cfg.Mode = *mode
	}
	if flags.Changed("grammar") {
		cfg.Grammar = *grammar
	}
	if flags.Changed("root") {
		cfg.Root = *root
	}
	if *noColor {
		cfg.Color = false
	}
	if *verbose {
		cfg.Verbose = true
	}

	clg.SetColor(cfg.UseColor()).SetVerbose(cfg.Verbose)
	clg.Printcf(logger.ColorBlue, "config fscommander : file: %s, mode: %s, grammar: %s, root: %q", cfg.File, cfg.Mode, cfg.Grammar, cfg.Root)

	srv, err := pkg.NewService(cfg, clg)
	if err != nil {
		clg.Printcf(logger.ColorRed, "error fscommander : %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = srv.Run(ctx); err != nil {
		clg.Printcf(logger.ColorRed, "error fscommander : got error %v on watcher !", err)
		return 1
	}
	return 0
}
