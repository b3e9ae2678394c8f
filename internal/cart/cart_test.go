package cart

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdd_MergesDuplicateProducts(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Mango Pickle", d("150"), 2))
	require.NoError(t, c.Add("Lemon Pickle", d("100"), 1))
	require.NoError(t, c.Add("Mango Pickle", d("150"), 3))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "Mango Pickle", c.Lines[0].Product)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
	assert.Equal(t, 6, c.Count())
}

func TestAdd_RejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		product string
		price   decimal.Decimal
		qty     int
	}{
		{"empty product", "  ", d("10"), 1},
		{"negative price", "Mango Pickle", d("-1"), 1},
		{"zero quantity", "Mango Pickle", d("10"), 0},
		{"negative quantity", "Mango Pickle", d("10"), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Cart
			err := c.Add(tc.product, tc.price, tc.qty)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.True(t, c.Empty())
		})
	}
}

func TestAdd_FreeItemAllowed(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Sample Sachet", decimal.Zero, 1))
	assert.True(t, c.Total().IsZero())
}

func TestTotal(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Mango Pickle", d("150"), 2))
	require.NoError(t, c.Add("Lemon Pickle", d("100"), 1))
	assert.True(t, c.Total().Equal(d("400")), "total=%s", c.Total())

	require.NoError(t, c.Add("Banana Chips", d("49.99"), 3))
	assert.True(t, c.Total().Equal(d("549.97")), "total=%s", c.Total())
}

func TestClear(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Mango Pickle", d("150"), 2))
	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())
}

func TestSnapshot_IsIndependent(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Mango Pickle", d("150"), 2))
	snap := c.Snapshot()
	require.NoError(t, c.Add("Mango Pickle", d("150"), 1))
	c.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)
}

// Random add/clear sequences: one line per product, quantities summed,
// total equal to an independently tracked running total.
func TestAddSequence_Properties(t *testing.T) {
	products := []string{"Mango Pickle", "Lemon Pickle", "Chicken Pickle", "Murukku"}
	prices := map[string]decimal.Decimal{
		"Mango Pickle":   d("150"),
		"Lemon Pickle":   d("100"),
		"Chicken Pickle": d("320.50"),
		"Murukku":        d("75.25"),
	}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		var c Cart
		want := map[string]int{}
		running := decimal.Zero

		for step := 0; step < 40; step++ {
			if rng.Intn(15) == 0 {
				c.Clear()
				want = map[string]int{}
				running = decimal.Zero
				continue
			}
			p := products[rng.Intn(len(products))]
			q := 1 + rng.Intn(5)
			require.NoError(t, c.Add(p, prices[p], q))
			want[p] += q
			running = running.Add(prices[p].Mul(decimal.NewFromInt(int64(q))))
		}

		seen := map[string]bool{}
		for _, l := range c.Lines {
			assert.False(t, seen[l.Product], "duplicate line for %s", l.Product)
			seen[l.Product] = true
			assert.Equal(t, want[l.Product], l.Quantity)
		}
		assert.Equal(t, len(want), len(c.Lines))
		assert.True(t, c.Total().Equal(running), "total=%s running=%s", c.Total(), running)
	}
}

func TestJSONRoundTripKeepsTotal(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add("Chicken Pickle", d("320.50"), 2))
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var back Cart
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Total().Equal(d("641")))
}
