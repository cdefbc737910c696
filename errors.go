package trustlot

import "errors"

// Every failure is fatal to the run: tax figures must not be silently
// incomplete, so there is no retry or partial-result policy. Errors are
// detected at the offending record and wrapped with enough context (date,
// instruction, raw values) to let the user fix the input file.
var (
	// ErrInvalidInput reports a malformed row, a non-positive quantity,
	// a negative price, or an out-of-range cost basis factor.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientShares reports a sell that requests more shares than
	// are open in the ledger.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrUnsupportedYear reports a tax year with no reference tables.
	ErrUnsupportedYear = errors.New("unsupported tax year")

	// ErrUnsupportedFund reports a fund with no reference table.
	ErrUnsupportedFund = errors.New("unsupported fund")
)
