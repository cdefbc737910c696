// Package cmd implements the CLI application to compute realized gains for
// commodity trust shareholders.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/trustlot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&fundsCmd{}, "reference")
	c.Register(&topicCmd{}, "documentation")
}

// loadTransactions reads and validates the holder's transaction CSV file.
func loadTransactions(filename string) ([]trustlot.Transaction, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction file %q: %w", filename, err)
	}
	defer f.Close()
	txs, err := trustlot.ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("transaction file %q: %w", filename, err)
	}
	return txs, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
