package trustlot

// EventKind identifies the kind of disposition behind a realized event.
type EventKind string

const (
	// PrincipalPayment is the trust's deemed sale of a fractional interest
	// in the underlying metal to cover fund expenses.
	PrincipalPayment EventKind = "PRINCIPAL_PAYMENT"
	// Sale is a disposition the holder booked themselves.
	Sale EventKind = "SALE"
)

// Term is the holding period classification of a realized event.
type Term string

const (
	ShortTerm Term = "SHORT"
	LongTerm  Term = "LONG"
)

// termOf classifies a disposition: long term only when held strictly more
// than one calendar year, per the IRS holding period convention. Selling on
// the one-year anniversary is still short term.
func termOf(acquisition, disposition Date) Term {
	if disposition.After(acquisition.AddYears(1)) {
		return LongTerm
	}
	return ShortTerm
}

// RealizedEvent is one realized disposition, ready to be rendered as a
// capital gains report row.
type RealizedEvent struct {
	Kind            EventKind
	AcquisitionDate Date
	DispositionDate Date
	Quantity        Quantity // fractional for principal payments, whole for sales
	Proceeds        Money
	CostBasis       Money
	GainLoss        Money
	Term            Term
}

// newRealizedEvent assembles an event, deriving the gain and the term.
func newRealizedEvent(kind EventKind, acquisition, disposition Date, quantity Quantity, proceeds, costBasis Money) RealizedEvent {
	return RealizedEvent{
		Kind:            kind,
		AcquisitionDate: acquisition,
		DispositionDate: disposition,
		Quantity:        quantity,
		Proceeds:        proceeds,
		CostBasis:       costBasis,
		GainLoss:        proceeds.Sub(costBasis),
		Term:            termOf(acquisition, disposition),
	}
}
