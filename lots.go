package trustlot

import (
	"fmt"
	"iter"
	"slices"
)

// Lot represents a single purchase of trust shares, tracked for cost basis.
//
// The purchase date and original quantity are immutable; the remaining
// quantity and the per-share basis evolve as the holder sells shares and as
// the trust's expense sales shave basis off every open lot. A lot is never
// removed from the ledger: once fully sold it stays behind, closed, so the
// full history of purchases remains inspectable after a run.
type Lot struct {
	purchaseDate Date
	original     Quantity
	remaining    Quantity
	basis        Money // per remaining share
}

// PurchaseDate returns the date the shares were bought. It determines
// the long or short term status of every disposition from this lot.
func (l *Lot) PurchaseDate() Date { return l.purchaseDate }

// Original returns the quantity originally purchased.
func (l *Lot) Original() Quantity { return l.original }

// Remaining returns the quantity still open.
func (l *Lot) Remaining() Quantity { return l.remaining }

// BasisPerShare returns the current cost basis per remaining share.
func (l *Lot) BasisPerShare() Money { return l.basis }

// Closed reports whether the lot is fully depleted.
func (l *Lot) Closed() bool { return l.remaining.IsZero() }

// Ledger owns the ordered set of lots of a single holder in a single fund.
//
// Lots are kept in purchase-date order (ties broken by creation order), which
// is also the FIFO depletion order. The ledger is the only shared mutable
// state of a run and is owned by one chronological pass: both the sale and
// the principal-payment processing mutate lots in place, and correctness
// depends on applying them in strict date order.
type Ledger struct {
	lots []*Lot
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{lots: make([]*Lot, 0)}
}

// OpenLot appends a new lot purchased on the given date, with the per-share
// basis starting at the purchase price.
func (l *Ledger) OpenLot(on Date, quantity Quantity, price Money) (*Lot, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: lot quantity %s on %s is not positive", ErrInvalidInput, quantity, on)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: lot price %s on %s is negative", ErrInvalidInput, price, on)
	}
	lot := &Lot{
		purchaseDate: on,
		original:     quantity,
		remaining:    quantity,
		basis:        price,
	}
	l.lots = append(l.lots, lot)
	// Keep purchase-date order, ties by creation order.
	slices.SortStableFunc(l.lots, func(a, b *Lot) int {
		return a.purchaseDate.Compare(b.purchaseDate)
	})
	return lot, nil
}

// Position returns the total quantity open across all lots.
func (l *Ledger) Position() Quantity {
	var total Quantity
	for _, lot := range l.lots {
		total = total.Add(lot.remaining)
	}
	return total
}

// Lots iterates over all lots, open and closed, in ledger order.
func (l *Ledger) Lots() iter.Seq[*Lot] {
	return func(yield func(*Lot) bool) {
		for _, lot := range l.lots {
			if !yield(lot) {
				return
			}
		}
	}
}

// Depletion is one lot's contribution to a FIFO sale.
type Depletion struct {
	Lot           *Lot
	Quantity      Quantity // quantity taken from the lot
	BasisPerShare Money    // per-share basis at the time of the sale
}

// DepleteFIFO consumes the given quantity from the ledger, oldest lots first,
// and returns one Depletion per touched lot in order.
//
// If the ledger holds fewer open shares than requested it fails with
// ErrInsufficientShares without mutating any lot.
func (l *Ledger) DepleteFIFO(quantity Quantity) ([]Depletion, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: sell quantity %s is not positive", ErrInvalidInput, quantity)
	}
	if position := l.Position(); position.LessThan(quantity) {
		return nil, fmt.Errorf("%w: selling %s shares but only %s are open", ErrInsufficientShares, quantity, position)
	}

	var depletions []Depletion
	left := quantity
	for _, lot := range l.lots {
		if left.IsZero() {
			break
		}
		if lot.Closed() {
			continue
		}
		taken := lot.remaining
		if taken.GreaterThan(left) {
			taken = left
		}
		lot.remaining = lot.remaining.Sub(taken)
		left = left.Sub(taken)
		depletions = append(depletions, Depletion{
			Lot:           lot,
			Quantity:      taken,
			BasisPerShare: lot.basis,
		})
	}
	return depletions, nil
}

// PrincipalPortion is one lot's share of a principal payment: the fractional
// deemed-sale quantity and the basis consumed with it.
type PrincipalPortion struct {
	Lot      *Lot
	Quantity Quantity // fractional quantity deemed sold from the lot
	Basis    Money    // basis consumed from the lot
}

// ApplyPrincipalPayment applies a fractional deemed sale across every open
// lot: each lot is considered to have sold remaining×factor shares, and its
// total basis shrinks by exactly the basis attributed to that fraction. The
// share count of the lot does not change; the holder still owns the same
// number of shares, each now carrying a little less basis.
//
// It returns one PrincipalPortion per open lot, in ledger order.
func (l *Ledger) ApplyPrincipalPayment(factor Factor) ([]PrincipalPortion, error) {
	if factor.IsNegative() {
		return nil, fmt.Errorf("%w: cost basis factor %s is negative", ErrInvalidInput, factor)
	}
	if factor.ExceedsOne() {
		return nil, fmt.Errorf("%w: cost basis factor %s would consume more basis than a lot holds", ErrInvalidInput, factor)
	}
	if factor.IsZero() {
		return nil, nil
	}

	// Snapshot the open lots before mutating any of them.
	open := make([]*Lot, 0, len(l.lots))
	for _, lot := range l.lots {
		if !lot.Closed() {
			open = append(open, lot)
		}
	}

	var portions []PrincipalPortion
	for _, lot := range open {
		consumed := lot.remaining.MulFactor(factor)
		basisConsumed := lot.basis.Mul(consumed)
		// Re-derive the per-share basis so the lot's total basis shrinks
		// by exactly basisConsumed.
		totalBasis := lot.basis.Mul(lot.remaining)
		lot.basis = totalBasis.Sub(basisConsumed).Div(lot.remaining)
		portions = append(portions, PrincipalPortion{
			Lot:      lot,
			Quantity: consumed,
			Basis:    basisConsumed,
		})
	}
	return portions, nil
}
