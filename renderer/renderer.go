// Package renderer turns a realized-events report into its output formats:
// a markdown document for the terminal and CSV rows for a spreadsheet.
package renderer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/trustlot"
)

// ReportMarkdown renders the realized events as a Form-8949-style markdown table.
func ReportMarkdown(report *trustlot.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Realized Gains Report — %s (%s) — %d\n\n",
		report.Fund.Symbol, report.Fund.Name, report.TaxYear)

	if len(report.Events) == 0 {
		fmt.Fprintln(&b, "No realized events.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Kind | Acquired | Sold | Quantity | Proceeds | Cost Basis | Gain/Loss | Term |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|:---|")
	for _, ev := range report.Events {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			ev.Kind,
			ev.AcquisitionDate,
			ev.DispositionDate,
			ev.Quantity,
			ev.Proceeds,
			ev.CostBasis,
			ev.GainLoss.SignedString(),
			ev.Term,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | **%s** | **%s** | |\n",
		report.TotalProceeds(),
		report.TotalCostBasis(),
		report.TotalGainLoss().SignedString(),
	)

	fmt.Fprint(&b, "\n## Summary\n\n")
	fmt.Fprintln(&b, "| | Gain/Loss |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Short-term | %s |\n", report.TermGainLoss(trustlot.ShortTerm).SignedString())
	fmt.Fprintf(&b, "| Long-term | %s |\n", report.TermGainLoss(trustlot.LongTerm).SignedString())
	fmt.Fprintf(&b, "| Fund expense sales | %s |\n", report.KindGainLoss(trustlot.PrincipalPayment).SignedString())
	fmt.Fprintf(&b, "| Own sales | %s |\n", report.KindGainLoss(trustlot.Sale).SignedString())
	fmt.Fprintf(&b, "| **Net** | **%s** |\n", report.TotalGainLoss().SignedString())

	return b.String()
}

// ReportCSV writes the realized events as CSV rows with plain decimal
// amounts, rounded to the cent the way a 1099-B reports them.
func ReportCSV(w io.Writer, report *trustlot.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"fund", "kind", "date_acquired", "date_sold", "quantity", "proceeds", "cost_basis", "gain_loss", "term"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write report header: %w", err)
	}
	for _, ev := range report.Events {
		row := []string{
			report.Fund.Symbol,
			string(ev.Kind),
			ev.AcquisitionDate.String(),
			ev.DispositionDate.String(),
			ev.Quantity.String(),
			ev.Proceeds.Decimal().Round(2).String(),
			ev.CostBasis.Decimal().Round(2).String(),
			ev.GainLoss.Decimal().Round(2).String(),
			string(ev.Term),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TransactionsMarkdown renders the parsed holder transactions, mostly as a
// validation aid for the input file.
func TransactionsMarkdown(txs []trustlot.Transaction) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Instruction | Quantity | Price |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", tx.Date, tx.Instruction, tx.Quantity, tx.Price)
	}
	return b.String()
}

// FundsMarkdown renders the supported funds and the span of their reference tables.
func FundsMarkdown(year int, tables map[string][]trustlot.ReferenceEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Supported Funds — %d\n\n", year)
	fmt.Fprintln(&b, "| Fund | Name | Expense Events | First | Last | Splits |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|:---|:---|")
	for _, fund := range trustlot.SupportedFunds() {
		entries := tables[fund.Symbol]
		first, last := "-", "-"
		if len(entries) > 0 {
			first = entries[0].Date.String()
			last = entries[len(entries)-1].Date.String()
		}
		splits := "-"
		if len(fund.Splits) > 0 {
			var parts []string
			for _, s := range fund.Splits {
				parts = append(parts, fmt.Sprintf("×%s on %s", s.Factor, s.Date))
			}
			splits = strings.Join(parts, ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s |\n",
			fund.Symbol, fund.Name, len(entries), first, last, splits)
	}
	return b.String()
}
