package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mcreations/storefront/pkg/money"
)

func TestRound(t *testing.T) {
	cases := map[string]string{
		"0":      "0.00",
		"3.5":    "3.50",
		"0.005":  "0.01",
		"9.994":  "9.99",
		"9.995":  "10.00",
		"120.00": "120.00",
	}
	for in, want := range cases {
		got := money.Round(decimal.RequireFromString(in))
		assert.Equal(t, want, got.StringFixed(2), "rounding %s", in)
	}
}

func TestParse(t *testing.T) {
	d, ok := money.Parse("9.99")
	assert.True(t, ok)
	assert.Equal(t, "9.99", money.String(d))

	for _, bad := range []string{"", "abc", "9.99.9", "$5"} {
		d, ok := money.Parse(bad)
		assert.False(t, ok, "parsing %q", bad)
		assert.True(t, d.IsZero())
	}
}

func TestParseOrZero(t *testing.T) {
	assert.Equal(t, "4.20", money.String(money.ParseOrZero("4.2")))
	assert.Equal(t, "0.00", money.String(money.ParseOrZero("nope")))
}
