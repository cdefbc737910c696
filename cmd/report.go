package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/trustlot"
	"github.com/etnz/trustlot/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	fund   string
	year   int
	split  string
	format string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute the realized gain/loss events for a tax year" }
func (*reportCmd) Usage() string {
	return `tl report [-fund <symbol>] [-year <year>] [-split <factor>] [-format <format>] <transactions.csv>

  Replays your transactions and the fund's expense events in date order and
  reports every realized disposition: your own sales and the deemed sales
  the trust forces when it sells metal to pay expenses.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "fund", "GLD", "Fund symbol (GLD, SLV, IAU)")
	f.IntVar(&c.year, "year", 2021, "Tax year of the report")
	f.StringVar(&c.split, "split", "", "Manual split adjustment factor applied to all transactions (quantity multiplied, price divided)")
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, csv)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transaction file argument")
		return subcommands.ExitUsageError
	}
	if c.format != "markdown" && c.format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want markdown or csv)\n", c.format)
		return subcommands.ExitUsageError
	}

	cfg := trustlot.Config{Fund: c.fund, TaxYear: c.year}
	if c.split != "" {
		split, err := trustlot.ParseQuantity(c.split)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid split factor %q: %v\n", c.split, err)
			return subcommands.ExitUsageError
		}
		cfg.Split = split
	}

	txs, err := loadTransactions(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := cfg.Run(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.format == "csv" {
		if err := renderer.ReportCSV(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
