package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"foliogate/internal/search"
)

type searchCmd struct {
	brokers     bool
	catalogPath string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "fuzzy search the symbol or broker catalog" }
func (*searchCmd) Usage() string {
	return `importctl search [-brokers] [-catalog file.yaml] <query>

  Prints the 10 best matches with their score. Searches symbols unless
  -brokers is given. Does not need an access token.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.brokers, "brokers", false, "Search brokers instead of symbols")
	f.StringVar(&c.catalogPath, "catalog", os.Getenv("FOLIOGATE_SEARCH_CATALOG_PATH"), "YAML catalog (built-in catalog when empty)")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	catalog, err := search.LoadCatalog(c.catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.brokers {
		results := catalog.SearchBrokers(query)
		for _, r := range results {
			fmt.Printf("%4d  %s\n", r.Score, r.Item.Name)
		}
		return found(len(results), query)
	}

	results := catalog.SearchSymbols(query)
	for _, r := range results {
		fmt.Printf("%4d  %-8s %-8s %s\n", r.Score, r.Item.Ticker, r.Item.Exchange, r.Item.Name)
	}
	return found(len(results), query)
}

func found(n int, query string) subcommands.ExitStatus {
	if n == 0 {
		fmt.Printf("No results found for '%s'.\n", query)
	}
	return subcommands.ExitSuccess
}
