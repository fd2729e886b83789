// Command importctl runs the import pipeline without the HTTP gateway:
// extract transactions from files, import them, search the lookup catalog
// and export the transaction history.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
)

var token = flag.String("token", os.Getenv("FOLIOGATE_TOKEN"), "Portfolio API access token (defaults to $FOLIOGATE_TOKEN)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&extractCmd{}, "pipeline")
	commander.Register(&importCmd{}, "pipeline")
	commander.Register(&searchCmd{}, "lookup")
	commander.Register(&exportCmd{}, "history")
	commander.ImportantFlag("token")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(int(commander.Execute(ctx)))
}
