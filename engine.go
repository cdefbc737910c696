package trustlot

import "fmt"

// Config selects the reference data of a run. It is passed explicitly into
// the engine entry point so the engine stays pure and testable apart from
// file and CLI concerns.
type Config struct {
	// Fund symbol: GLD, SLV or IAU.
	Fund string
	// TaxYear selects the reference table (only 2021 is on board).
	TaxYear int
	// Split optionally restates the whole transaction file by this factor
	// (quantity multiplied, price divided), overriding the fund's own split
	// schedule. Zero means no manual adjustment.
	Split Quantity
}

// Run computes the holder's realized gain and loss events for the tax year:
// it loads the fund's reference table, restates transactions for splits, and
// replays everything chronologically against a fresh ledger.
func (c Config) Run(txs []Transaction) (*Report, error) {
	fund, err := FundBySymbol(c.Fund)
	if err != nil {
		return nil, err
	}
	entries, err := LoadReferenceTable(fund, c.TaxYear)
	if err != nil {
		return nil, err
	}

	if !c.Split.IsZero() {
		txs, err = ApplySplit(txs, c.Split, Date{})
	} else {
		for _, split := range fund.Splits {
			txs, err = ApplySplit(txs, split.Factor, split.Date)
			if err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	ledger := NewLedger()
	events, err := ComputeRealizedEvents(ledger, entries, txs)
	if err != nil {
		return nil, err
	}
	return &Report{Fund: fund, TaxYear: c.TaxYear, Events: events, Ledger: ledger}, nil
}

// ComputeRealizedEvents replays the fund expense events and the holder
// transactions, merged in chronological order, against the given ledger
// (usually a fresh one), and returns the realized events in emission order.
// The ledger is left populated so the surviving lots can be inspected.
//
// The two streams must interleave: each expense event's factor applies to
// the basis as already reduced by all prior events, and a sale must see the
// reduced basis of every principal payment up to and including its date.
// When an expense event and a transaction fall on the same day, the expense
// event goes first: the trust's deemed sales are continuous business-day
// events, while the holder's order executes at a point in the day. The
// source documents leave same-day ordering open; this is a deliberate,
// tested policy.
func ComputeRealizedEvents(ledger *Ledger, entries []ReferenceEntry, txs []Transaction) ([]RealizedEvent, error) {
	var events []RealizedEvent

	ri, ti := 0, 0
	for ri < len(entries) || ti < len(txs) {
		if ri < len(entries) && (ti >= len(txs) || !entries[ri].Date.After(txs[ti].Date)) {
			evs, err := processPrincipalPayment(ledger, entries[ri])
			if err != nil {
				return nil, err
			}
			events = append(events, evs...)
			ri++
			continue
		}
		evs, err := processTransaction(ledger, txs[ti])
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
		ti++
	}
	return events, nil
}

// processPrincipalPayment applies one fund expense event to the ledger and
// emits one event per open lot. Events with a zero factor, or falling while
// no lot is open, emit nothing.
func processPrincipalPayment(ledger *Ledger, entry ReferenceEntry) ([]RealizedEvent, error) {
	portions, err := ledger.ApplyPrincipalPayment(entry.Factor)
	if err != nil {
		return nil, fmt.Errorf("principal payment on %s: %w", entry.Date, err)
	}
	var events []RealizedEvent
	for _, portion := range portions {
		proceeds := entry.Price.Mul(portion.Quantity)
		events = append(events, newRealizedEvent(
			PrincipalPayment,
			portion.Lot.PurchaseDate(),
			entry.Date,
			portion.Quantity,
			proceeds,
			portion.Basis,
		))
	}
	return events, nil
}

// processTransaction applies one holder order to the ledger. A buy opens a
// lot and emits nothing (a purchase is not a disposition); a sell depletes
// lots FIFO and emits one event per touched lot.
func processTransaction(ledger *Ledger, tx Transaction) ([]RealizedEvent, error) {
	switch tx.Instruction {
	case Buy:
		if _, err := ledger.OpenLot(tx.Date, tx.Quantity, tx.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", tx, err)
		}
		return nil, nil
	case Sell:
		depletions, err := ledger.DepleteFIFO(tx.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tx, err)
		}
		var events []RealizedEvent
		for _, depletion := range depletions {
			proceeds := tx.Price.Mul(depletion.Quantity)
			costBasis := depletion.BasisPerShare.Mul(depletion.Quantity)
			events = append(events, newRealizedEvent(
				Sale,
				depletion.Lot.PurchaseDate(),
				tx.Date,
				depletion.Quantity,
				proceeds,
				costBasis,
			))
		}
		return events, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown instruction", ErrInvalidInput, tx)
	}
}
