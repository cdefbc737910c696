package trustlot

// Report contains the realized gain and loss events of one run, ready for
// rendering as capital gains report rows.
type Report struct {
	Fund    Fund
	TaxYear int
	Events  []RealizedEvent
	// Ledger is the ledger after the run, with every lot ever opened
	// (closed ones included) for audit.
	Ledger *Ledger
}

// sum folds the given money field over the events matching the filter.
func (r *Report) sum(filter func(RealizedEvent) bool, pick func(RealizedEvent) Money) Money {
	var total Money
	for _, ev := range r.Events {
		if filter(ev) {
			total = total.Add(pick(ev))
		}
	}
	return total
}

func anyEvent(RealizedEvent) bool { return true }

// TotalProceeds returns the proceeds over all events.
func (r *Report) TotalProceeds() Money {
	return r.sum(anyEvent, func(ev RealizedEvent) Money { return ev.Proceeds })
}

// TotalCostBasis returns the cost basis over all events.
func (r *Report) TotalCostBasis() Money {
	return r.sum(anyEvent, func(ev RealizedEvent) Money { return ev.CostBasis })
}

// TotalGainLoss returns the net realized gain or loss over all events.
func (r *Report) TotalGainLoss() Money {
	return r.sum(anyEvent, func(ev RealizedEvent) Money { return ev.GainLoss })
}

// TermGainLoss returns the net realized gain or loss over the events of one term.
func (r *Report) TermGainLoss(term Term) Money {
	return r.sum(
		func(ev RealizedEvent) bool { return ev.Term == term },
		func(ev RealizedEvent) Money { return ev.GainLoss },
	)
}

// KindGainLoss returns the net realized gain or loss over the events of one kind.
func (r *Report) KindGainLoss(kind EventKind) Money {
	return r.sum(
		func(ev RealizedEvent) bool { return ev.Kind == kind },
		func(ev RealizedEvent) Money { return ev.GainLoss },
	)
}
