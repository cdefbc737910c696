package trustlot

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for tests to create a date from its ISO string.
func day(s string) Date { return MustParseDate(s) }
