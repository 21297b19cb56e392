package params

import (
	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// TaxRegime selects one of the two Indian income-tax regimes.
type TaxRegime string

const (
	TaxRegimeOld TaxRegime = "old"
	TaxRegimeNew TaxRegime = "new"
)

// TaxSlab is one band of a progressive slab table. UpTo is nil for the
// open-ended top slab.
type TaxSlab struct {
	UpTo *decimal.Decimal
	Rate decimal.Decimal
}

func slab(upTo string, rate string) TaxSlab {
	s := TaxSlab{Rate: decimal.RequireFromString(rate)}
	if upTo != "" {
		v := decimal.RequireFromString(upTo)
		s.UpTo = &v
	}
	return s
}

// builtinSlabs is the documented default slab table per regime (annual
// income, INR). An assumptions file can replace either table.
func builtinSlabs() map[TaxRegime][]TaxSlab {
	return map[TaxRegime][]TaxSlab{
		TaxRegimeOld: {
			slab("250000", "0"),
			slab("500000", "0.05"),
			slab("1000000", "0.20"),
			slab("", "0.30"),
		},
		TaxRegimeNew: {
			slab("300000", "0"),
			slab("600000", "0.05"),
			slab("900000", "0.10"),
			slab("1200000", "0.15"),
			slab("1500000", "0.20"),
			slab("", "0.30"),
		},
	}
}

// IncomeTax computes progressive-slab tax on an annual income for the given
// regime. Non-positive income is taxed zero; the result is never negative.
func (s *Store) IncomeTax(income decimal.Decimal, regime TaxRegime) (decimal.Decimal, error) {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	s.mu.RLock()
	slabs, ok := s.slabs[regime]
	s.mu.RUnlock()
	if !ok {
		return decimal.Zero, domain.NewValidationError("regime", "unknown tax regime "+string(regime))
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, sl := range slabs {
		upper := income
		if sl.UpTo != nil && sl.UpTo.LessThan(income) {
			upper = *sl.UpTo
		}
		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(sl.Rate))
		}
		if sl.UpTo == nil || sl.UpTo.GreaterThanOrEqual(income) {
			break
		}
		lower = *sl.UpTo
	}
	return tax, nil
}

// SetSlabs replaces the slab table for a regime (assumptions-file bootstrap)
func (s *Store) SetSlabs(regime TaxRegime, slabs []TaxSlab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slabs[regime] = slabs
}
