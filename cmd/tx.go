package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/trustlot/renderer"
	"github.com/google/subcommands"
)

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "parse and list the transactions of a file" }
func (*txCmd) Usage() string {
	return `tl tx <transactions.csv>

  Parses the transaction file and lists its orders in date order. Useful to
  validate the file before running a report.
`
}

func (*txCmd) SetFlags(f *flag.FlagSet) {}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transaction file argument")
		return subcommands.ExitUsageError
	}
	txs, err := loadTransactions(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
