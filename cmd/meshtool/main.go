// Command meshtool imports Wavefront OBJ files into mesh descriptions, packs
// them as compressed bulk data and keeps them in a blob store under asset
// names.
//
//	meshtool [-config meshtool.toml] [-v] <command> [arguments]
//
// Commands:
//
//	import   import, triangulate and compact OBJ files and store them
//	export   write a stored asset back out as OBJ
//	inspect  print element counts, materials and bounds of stored assets
//	list     print the catalog
//	prune    delete payloads no asset points at
//	config   print the effective configuration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hupe1980/meshdesc/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "meshtool: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("meshtool", stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	verbose := fs.Bool("v", false, "log at debug level")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: meshtool [-config file] [-v] <command> [arguments]")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\ncommands:")
		for _, c := range commands {
			fmt.Fprintf(fs.Output(), "  %s\n", c.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command")
	}

	cmd, ok := lookupCommand(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	e, err := newEnv(ctx, cfg, stdout, stderr)
	if err != nil {
		return err
	}
	return cmd.run(ctx, e, fs.Args()[1:])
}
