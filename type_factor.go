package trustlot

import "github.com/shopspring/decimal"

// Factor is a cost basis factor: the fraction of every open lot deemed sold
// by the trust on one expense date. Published factors are tiny (well under
// 0.001) but the type accepts anything in [0, 1].
type Factor struct {
	value decimal.Decimal
}

// F builds a Factor from a numeric constant.
func F[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Factor {
	return Factor{value: newDecimal(value)}
}

// ParseFactor parses the decimal representation of a cost basis factor.
func ParseFactor(s string) (Factor, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Factor{}, err
	}
	return Factor{value: v}, nil
}

func (f Factor) IsZero() bool     { return f.value.IsZero() }
func (f Factor) IsNegative() bool { return f.value.IsNegative() }
func (f Factor) String() string   { return f.value.String() }

// ExceedsOne reports whether the factor would consume more basis than a lot holds.
func (f Factor) ExceedsOne() bool { return f.value.GreaterThan(decimal.NewFromInt(1)) }
