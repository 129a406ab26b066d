package pricing

import (
	"math"
	"testing"

	"github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	out, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return out
}

func rtu() domain.LineItem {
	return domain.LineItem{
		ID:               "li1",
		Quantity:         3,
		ListPrice:        18000,
		Multiplier:       0.42,
		PriceIncreasePct: 0.03,
		PayPct:           0.05,
		Freight:          1200,
		Markup:           1.35,
	}
}

func TestCompute_Formula(t *testing.T) {
	got := Compute(rtu())

	// 3 x 18000 x 0.42 x 1.03
	assert.True(t, d(t, "23360.40").Equal(got.MfgNet), "mfg net %s", got.MfgNet)
	assert.True(t, d(t, "1168.02").Equal(got.MfgCommission), "mfg commission %s", got.MfgCommission)
	assert.True(t, d(t, "24560.40").Equal(got.TotalNet), "total net %s", got.TotalNet)
	assert.True(t, d(t, "33156.54").Equal(got.BidPrice), "bid price %s", got.BidPrice)
	assert.True(t, d(t, "9764.16").Equal(got.SalesCommission), "sales commission %s", got.SalesCommission)
}

func TestCompute_RoundsEachOutputFromUnroundedValues(t *testing.T) {
	// mfg net 0.004 rounds to 0.00, but total net is built from 0.004 + 0.001.
	item := domain.LineItem{Quantity: 1, ListPrice: 0.004, Multiplier: 1, Freight: 0.001, Markup: 1}
	got := Compute(item)

	assert.True(t, decimal.Zero.Equal(got.MfgNet))
	assert.True(t, d(t, "0.01").Equal(got.TotalNet), "total net %s", got.TotalNet)
}

func TestCompute_Deterministic(t *testing.T) {
	item := rtu()
	assert.Equal(t, Compute(item), Compute(item))
}

func TestCompute_DefaultCoalescing(t *testing.T) {
	got := Compute(domain.LineItem{})
	for name, v := range map[string]decimal.Decimal{
		"mfg_net":          got.MfgNet,
		"mfg_commission":   got.MfgCommission,
		"total_net":        got.TotalNet,
		"bid_price":        got.BidPrice,
		"sales_commission": got.SalesCommission,
	} {
		assert.True(t, v.IsZero(), "%s = %s", name, v)
	}
}

func TestCompute_NonFiniteInputsDegradeToDefaults(t *testing.T) {
	item := rtu()
	item.Freight = math.NaN()
	item.Markup = math.Inf(1)
	got := Compute(item)

	assert.True(t, d(t, "23360.40").Equal(got.TotalNet), "total net %s", got.TotalNet)
	// markup coalesces to 1, so the bid equals the net and only the mfg commission remains.
	assert.True(t, got.TotalNet.Equal(got.BidPrice))
	assert.True(t, got.MfgCommission.Equal(got.SalesCommission))
}

func TestCompute_FreightOnlyLine(t *testing.T) {
	got := Compute(domain.LineItem{Freight: 400, Markup: 1.35})
	assert.True(t, decimal.Zero.Equal(got.MfgNet))
	assert.True(t, d(t, "400").Equal(got.TotalNet))
	assert.True(t, d(t, "540").Equal(got.BidPrice))
	assert.True(t, d(t, "140").Equal(got.SalesCommission))
}

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "1167.594", want: "1167.59"},
		{in: "33145.038", want: "33145.04"},
		{in: "0.005", want: "0.01"},
		{in: "2.675", want: "2.68"},
		{in: "-2.675", want: "-2.67"},
		{in: "-0.004", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := RoundCents(d(t, tc.in))
			if !got.Equal(d(t, tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	assert.True(t, got.TotalNet.IsZero())
	assert.True(t, got.BidPrice.IsZero())
	assert.True(t, got.SalesCommission.IsZero())
}

func TestAggregate_SumsRoundedLineTotals(t *testing.T) {
	// Each line's total net is 0.005 unrounded and 0.01 displayed.
	item := domain.LineItem{Quantity: 1, ListPrice: 0.005, Multiplier: 1}
	items := []domain.LineItem{item, item}

	got := Aggregate(items)

	var displayed decimal.Decimal
	for _, it := range items {
		displayed = displayed.Add(Compute(it).TotalNet)
	}
	assert.True(t, displayed.Equal(got.TotalNet))
	assert.True(t, d(t, "0.02").Equal(got.TotalNet), "total net %s", got.TotalNet)
}

func TestAggregate_Fixture(t *testing.T) {
	items := []domain.LineItem{
		rtu(),
		{Quantity: 3, ListPrice: 1100, PriceIncreasePct: 0.03, Multiplier: 0.42, Markup: 1.35},
		{Quantity: 3, ListPrice: 600, PriceIncreasePct: 0.03, Multiplier: 0.42, Markup: 1.35},
	}
	got := Aggregate(items)

	assert.True(t, d(t, "26766.66").Equal(got.TotalNet), "total net %s", got.TotalNet)
	assert.True(t, d(t, "36134.99").Equal(got.BidPrice), "bid price %s", got.BidPrice)
	assert.True(t, d(t, "10536.35").Equal(got.SalesCommission), "sales commission %s", got.SalesCommission)
}
