package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	madnet "github.com/peterkuimelis/madrigal/internal/net"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a subcommand and returns the process exit code, so that
// deferred cleanup finishes before main exits.
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch args[0] {
	case "host":
		err = runHost(ctx, args[1:])
	case "join":
		err = runJoin(ctx, args[1:])
	default:
		printUsage()
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  madrigal host [--port P] [--rules FILE] [--seed N] [--events FILE] [--verbose]")
	fmt.Println("  madrigal join [--addr ADDR] [--name NAME]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	rulesFile := fs.String("rules", "", "path to a rules YAML file (default rules if empty)")
	seed := fs.Int64("seed", 0, "shuffle seed (0 for a random deal)")
	eventsFile := fs.String("events", "", "append the match event log to this file")
	verbose := fs.Bool("verbose", false, "log server diagnostics to stderr")
	fs.Parse(args)

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := &madnet.Server{
		Port:      *port,
		RulesFile: *rulesFile,
		Seed:      *seed,
		Logger:    logger,
	}
	if *eventsFile != "" {
		f, err := os.OpenFile(*eventsFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		srv.EventLog = f
	}

	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	name := fs.String("name", "", "name announced to the host")
	fs.Parse(args)

	return madnet.Connect(ctx, *addr, *name)
}
