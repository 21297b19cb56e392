package params

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeTax_NonPositiveIncome(t *testing.T) {
	s := newTestStore()

	tax, err := s.IncomeTax(decimal.Zero, TaxRegimeOld)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())

	tax, err = s.IncomeTax(decimal.NewFromInt(-100000), TaxRegimeNew)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestIncomeTax_OldRegimeSlabs(t *testing.T) {
	s := newTestStore()

	// 12L: 0 + 250000*5% + 500000*20% + 200000*30% = 172500
	tax, err := s.IncomeTax(decimal.NewFromInt(1200000), TaxRegimeOld)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(172500)), "got %s", tax)

	// Income inside the zero slab.
	tax, err = s.IncomeTax(decimal.NewFromInt(200000), TaxRegimeOld)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestIncomeTax_NewRegimeSlabs(t *testing.T) {
	s := newTestStore()

	// 12L: 0 + 300000*5% + 300000*10% + 300000*15% = 90000
	tax, err := s.IncomeTax(decimal.NewFromInt(1200000), TaxRegimeNew)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(90000)), "got %s", tax)

	// 20L crosses into the open-ended top slab:
	// 90000 + 300000*20% + 500000*30% = 300000
	tax, err = s.IncomeTax(decimal.NewFromInt(2000000), TaxRegimeNew)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(300000)), "got %s", tax)
}

func TestIncomeTax_RegimesDiffer(t *testing.T) {
	s := newTestStore()

	old, err := s.IncomeTax(decimal.NewFromInt(1200000), TaxRegimeOld)
	require.NoError(t, err)
	new_, err := s.IncomeTax(decimal.NewFromInt(1200000), TaxRegimeNew)
	require.NoError(t, err)
	assert.False(t, old.Equal(new_))
}

func TestIncomeTax_UnknownRegime(t *testing.T) {
	s := newTestStore()
	_, err := s.IncomeTax(decimal.NewFromInt(500000), TaxRegime("flat"))
	assert.Error(t, err)
}

func TestIncomeTax_NeverNegative(t *testing.T) {
	s := newTestStore()
	for _, income := range []int64{1, 250000, 250001, 999999, 1500000, 10000000} {
		tax, err := s.IncomeTax(decimal.NewFromInt(income), TaxRegimeOld)
		require.NoError(t, err)
		assert.False(t, tax.IsNegative(), "income %d", income)
	}
}
