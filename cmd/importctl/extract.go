package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"foliogate/internal/domain"
	"foliogate/internal/moneyfmt"
	"foliogate/internal/pipeline"
)

type extractCmd struct {
	asJSON bool
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extract transactions from screenshots or statements" }
func (*extractCmd) Usage() string {
	return `importctl extract [-json] <file>...

  Sends up to 10 files to the extraction service in parallel and prints the
  transactions found in each, with any validation problems. Nothing is imported.
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print the pipeline snapshot as JSON")
}

func (c *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	snap := state.Snapshot()
	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	for i, file := range snap.Files {
		printFile(i, file, state.FileErrors(i))
	}
	if !pipeline.AnyCompleted(snap.Files) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// extract registers the files and waits for every extraction to settle.
func (s *session) extract(ctx context.Context, paths []string) (*pipeline.State, error) {
	raws, err := rawFiles(paths)
	if err != nil {
		return nil, err
	}
	state := pipeline.NewState(uuid.New(), pipeline.WithMaxFiles(s.cfg.Extraction.MaxFiles))
	if err := state.Register(raws); err != nil {
		return nil, err
	}
	d := &pipeline.Dispatcher{Timeout: s.cfg.Extraction.FileTimeout(), Concurrency: s.cfg.Extraction.Concurrency}
	state.Extract(ctx, d, pipeline.NewAPIExtractor(s.api, s.token))
	return state, nil
}

func printFile(index int, file domain.FileProcessingState, errs []domain.ValidationError) {
	fmt.Printf("[%d] %s: %s\n", index, file.File.Name, file.Status)
	if file.Status == domain.FileStatusError {
		fmt.Printf("    %s\n", file.Error)
		return
	}
	for _, d := range file.Drafts {
		fmt.Printf("    %-8s %-10s %-5s qty=%s price=%s amount=%s %s\n",
			d.ID, d.Date, d.TradeType, d.Quantity, d.Price, moneyfmt.Format(d.Amount, d.Currency), d.Symbol)
	}
	for _, e := range errs {
		fmt.Printf("    ! row %s %s: %s\n", e.RowID, e.Field, e.Message)
	}
}
