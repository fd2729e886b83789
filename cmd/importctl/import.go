package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/port"
)

type importCmd struct {
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "extract transactions from files and import the valid ones" }
func (*importCmd) Usage() string {
	return `importctl import [-dry-run] <file>...

  Extracts every file, then imports the rows of each completed file that
  passed validation. Rows with validation problems are skipped and listed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "Extract and validate only")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required.")
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	state, err := s.extract(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	submit := func(ctx context.Context, rows []domain.TransactionDraft) (*port.CreateOutput, error) {
		if c.dryRun {
			return &port.CreateOutput{Message: fmt.Sprintf("%d transactions would be imported", len(rows)), Count: len(rows)}, nil
		}
		return s.api.CreateTransactions(ctx, s.token, rows)
	}

	snap := state.Snapshot()
	failed := 0
	for i, file := range snap.Files {
		printFile(i, file, state.FileErrors(i))
		if file.Status != domain.FileStatusCompleted {
			continue
		}
		outcome, err := state.Import(ctx, i, submit)
		switch {
		case errors.Is(err, domain.ErrNothingToImport):
			fmt.Printf("    nothing to import\n")
		case err != nil:
			fmt.Fprintf(os.Stderr, "    import failed: %v\n", err)
			failed++
		default:
			fmt.Printf("    %s (skipped %d)\n", outcome.Message, outcome.Skipped)
		}
	}

	if failed > 0 || !pipeline.AnyCompleted(snap.Files) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
