package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"foliogate/internal/export"
	"foliogate/internal/service"
)

type exportCmd struct {
	format string
	name   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transaction history as CSV or XLSX" }
func (*exportCmd) Usage() string {
	return `importctl export [-format csv|xlsx] [-name prefix] [-o file] [key=value]...

  Downloads the transaction history and writes it to a file. Extra key=value
  arguments are passed to the history endpoint as filters, e.g. symbol=AAPL.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Export format: csv or xlsx")
	f.StringVar(&c.name, "name", "transactions", "File name prefix")
	f.StringVar(&c.output, "o", "", "Output file (defaults to <name>_<date>.<format>)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	filters, err := parseFilters(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = export.BuildFilename(c.name, format, time.Now())
	}
	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	n, err := service.NewTransactionService(s.api).Export(ctx, s.token, format, filters, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(output)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Exported %d transactions to %s\n", n, output)
	return subcommands.ExitSuccess
}
