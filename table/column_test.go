package table

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {

	cases := map[string]struct {
		kind     Kind
		value    any
		expected string
	}{
		"Active status":   {StatusKind, 1, "Active"},
		"Inactive status": {StatusKind, 0, "Inactive"},
		"Date":            {DateKind, time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), "09 Mar 2024"},
		"Zero date":       {DateKind, time.Time{}, ""},
		"Decimal money":   {MoneyKind, decimal.RequireFromString("12.5"), "12.50"},
		"Float money":     {MoneyKind, 3.0, "3.00"},
		"Text":            {TextKind, "Shoes", "Shoes"},
		"Nil":             {TextKind, nil, ""},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, c.expected, Format(c.kind, c.value))
		})
	}
}

func TestCompare(t *testing.T) {

	require.Equal(t, -1, compare(1, 2))
	require.Equal(t, 1, compare(int64(5), int64(2)))
	require.Equal(t, 0, compare("Apple", "apple"))
	require.Equal(t, -1, compare(decimal.NewFromInt(1), decimal.NewFromInt(2)))
	require.Equal(t, 1, compare(time.Unix(10, 0), time.Unix(5, 0)))
	require.Equal(t, -1, compare(false, true))
}
