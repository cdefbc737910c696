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

type fundsCmd struct {
	year int
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the supported funds and their reference tables" }
func (*fundsCmd) Usage() string {
	return `tl funds [-year <year>]

  Lists the supported funds, the span of their expense-event reference
  tables, and their split adjustments.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 2021, "Tax year of the reference tables")
}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tables := make(map[string][]trustlot.ReferenceEntry)
	for _, fund := range trustlot.SupportedFunds() {
		entries, err := trustlot.LoadReferenceTable(fund, c.year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		tables[fund.Symbol] = entries
	}
	printMarkdown(renderer.FundsMarkdown(c.year, tables))
	return subcommands.ExitSuccess
}
