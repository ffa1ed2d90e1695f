package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTax(t *testing.T) {
	cases := []struct {
		net, rate, want string
	}{
		{"10.00", "19", "1.90"},
		{"5.00", "19", "0.95"},
		{"0.05", "19", "0.01"},
		{"0.02", "19", "0.00"},
		{"0", "19", "0.00"},
		{"10.00", "0", "0.00"},
	}
	for _, tc := range cases {
		got := ComputeTax(decimal.RequireFromString(tc.net), decimal.RequireFromString(tc.rate))
		assert.Equal(t, tc.want, got.StringFixed(2), "net=%s rate=%s", tc.net, tc.rate)
	}
}

func TestCovers(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	rate := VatRate{ValidFrom: from, ValidTo: &to}

	assert.False(t, rate.Covers(from.Add(-time.Second)))
	assert.True(t, rate.Covers(from))
	assert.False(t, rate.Covers(to))

	rate.ValidTo = nil
	assert.True(t, rate.Covers(to.AddDate(5, 0, 0)))
}
