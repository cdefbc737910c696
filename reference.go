package trustlot

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// The reference tables are hand-curated from the yearly tax information
// documents published by the trust sponsors (one row per fund expense event),
// and shipped with the binary.
//
//go:embed gross_proceeds
var grossProceeds embed.FS

// supportedYears lists the tax years with reference tables on board.
var supportedYears = []int{2021}

// Split is a share split applied by a fund, adjusted retroactively:
// transactions dated before Date are scaled by Factor (quantity multiplied,
// price divided) so the whole file speaks in post-split shares.
type Split struct {
	Date   Date
	Factor Quantity
}

// Fund is a commodity trust supported by the calculator.
type Fund struct {
	Symbol string
	Name   string
	Splits []Split
}

// funds in display order.
var funds = []Fund{
	{Symbol: "GLD", Name: "SPDR Gold Shares"},
	{Symbol: "SLV", Name: "iShares Silver Trust"},
	{Symbol: "IAU", Name: "iShares Gold Trust",
		// 1-for-2 reverse split effective 2021-05-24.
		Splits: []Split{{Date: NewDate(2021, time.May, 24), Factor: Q(0.5)}},
	},
}

// SupportedFunds returns the funds with reference tables on board.
func SupportedFunds() []Fund {
	return funds
}

// FundBySymbol returns the fund for the given symbol, or ErrUnsupportedFund.
func FundBySymbol(symbol string) (Fund, error) {
	for _, f := range funds {
		if f.Symbol == symbol {
			return f, nil
		}
	}
	return Fund{}, fmt.Errorf("%w: %q (supported: GLD, SLV, IAU)", ErrUnsupportedFund, symbol)
}

// ReferenceEntry is one fund expense event: on Date the trust sold metal at
// Price per share, deeming a Factor fraction of every open lot sold.
type ReferenceEntry struct {
	Date   Date
	Price  Money
	Factor Factor
}

// LoadReferenceTable returns the fund's expense events for the tax year, in
// ascending date order.
func LoadReferenceTable(fund Fund, year int) ([]ReferenceEntry, error) {
	supported := false
	for _, y := range supportedYears {
		supported = supported || y == year
	}
	if !supported {
		return nil, fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedYear, year, supportedYears)
	}

	name := fmt.Sprintf("gross_proceeds/%d/gross-proceeds-%s.csv", year, fund.Symbol)
	f, err := grossProceeds.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: no reference table for %s in %d: %v", ErrUnsupportedFund, fund.Symbol, year, err)
	}
	defer f.Close()

	entries, err := readReferenceTable(f)
	if err != nil {
		return nil, fmt.Errorf("reference table %s: %w", name, err)
	}
	return entries, nil
}

// readReferenceTable parses a reference table CSV with columns
// date, price_per_share, cost_basis_factor.
func readReferenceTable(r io.Reader) ([]ReferenceEntry, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty reference table", ErrInvalidInput)
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, required := range []string{"date", "price_per_share", "cost_basis_factor"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidInput, required)
		}
	}

	var entries []ReferenceEntry
	for n, row := range rows[1:] {
		on, err := ParseDate(row[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidInput, n+2, err)
		}
		price, err := ParseMoney(row[cols["price_per_share"]], "USD")
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: price_per_share %q: %v", ErrInvalidInput, n+2, row[cols["price_per_share"]], err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: row %d: price_per_share %s is negative", ErrInvalidInput, n+2, price)
		}
		factor, err := ParseFactor(row[cols["cost_basis_factor"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: cost_basis_factor %q: %v", ErrInvalidInput, n+2, row[cols["cost_basis_factor"]], err)
		}
		if factor.IsNegative() || factor.ExceedsOne() {
			return nil, fmt.Errorf("%w: row %d: cost_basis_factor %s out of range", ErrInvalidInput, n+2, factor)
		}
		if len(entries) > 0 && !entries[len(entries)-1].Date.Before(on) {
			return nil, fmt.Errorf("%w: row %d: dates not in ascending order", ErrInvalidInput, n+2)
		}
		entries = append(entries, ReferenceEntry{Date: on, Price: price, Factor: factor})
	}
	return entries, nil
}
