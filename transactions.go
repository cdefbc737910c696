package trustlot

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// Instruction is the action of a holder transaction.
type Instruction string

const (
	Buy  Instruction = "BUY"
	Sell Instruction = "SELL"
)

// Transaction is one holder order: a purchase or a sale of trust shares.
type Transaction struct {
	Date        Date
	Instruction Instruction
	Quantity    Quantity
	Price       Money // price per share
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s @ %s", t.Date, t.Instruction, t.Quantity, t.Price)
}

// ReadTransactions parses the holder's transaction file.
//
// The file is a CSV with a header row; the columns date, instruction,
// quantity and price are required, anything else is ignored. Quantities must
// be positive whole shares and prices non-negative. The returned slice is
// sorted by date, rows on the same day keeping their file order.
func ReadTransactions(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // extra columns are fine
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty transaction file", ErrInvalidInput)
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[name] = i
	}
	lastCol := 0
	for _, required := range []string{"date", "instruction", "quantity", "price"} {
		i, ok := cols[required]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q in transaction file", ErrInvalidInput, required)
		}
		lastCol = max(lastCol, i)
	}

	var txs []Transaction
	for n, row := range rows[1:] {
		line := n + 2 // header is line 1
		if len(row) <= lastCol {
			return nil, fmt.Errorf("%w: line %d: too few fields", ErrInvalidInput, line)
		}
		on, err := ParseDate(row[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, line, err)
		}
		instruction := Instruction(row[cols["instruction"]])
		if instruction != Buy && instruction != Sell {
			return nil, fmt.Errorf("%w: line %d: unknown instruction %q", ErrInvalidInput, line, row[cols["instruction"]])
		}
		quantity, err := ParseQuantity(row[cols["quantity"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: quantity %q: %v", ErrInvalidInput, line, row[cols["quantity"]], err)
		}
		if !quantity.IsPositive() || !quantity.IsInteger() {
			return nil, fmt.Errorf("%w: line %d: quantity %s is not a positive whole number of shares", ErrInvalidInput, line, quantity)
		}
		price, err := ParseMoney(row[cols["price"]], "USD")
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: price %q: %v", ErrInvalidInput, line, row[cols["price"]], err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: price %s is negative", ErrInvalidInput, line, price)
		}
		txs = append(txs, Transaction{Date: on, Instruction: instruction, Quantity: quantity, Price: price})
	}

	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return txs, nil
}

// ApplySplit restates transactions in post-split shares: quantity is
// multiplied by the factor and the per-share price divided by it.
//
// Only transactions dated strictly before the cutover date are adjusted;
// a zero cutover adjusts every transaction (the manual -split flag).
func ApplySplit(txs []Transaction, factor Quantity, before Date) ([]Transaction, error) {
	if !factor.IsPositive() {
		return nil, fmt.Errorf("%w: split factor %s is not positive", ErrInvalidInput, factor)
	}
	adjusted := make([]Transaction, len(txs))
	for i, tx := range txs {
		if !before.IsZero() && !tx.Date.Before(before) {
			adjusted[i] = tx
			continue
		}
		tx.Quantity = tx.Quantity.Mul(factor)
		tx.Price = tx.Price.Div(factor)
		if !tx.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: split factor %s leaves no shares for %s", ErrInvalidInput, factor, tx)
		}
		adjusted[i] = tx
	}
	return adjusted, nil
}
