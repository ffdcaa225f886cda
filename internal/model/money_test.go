package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentsFromDollars(t *testing.T) {
	cases := map[string]int{
		"0":      0,
		"1":      100,
		"149.99": 14999,
		"200.5":  20050,
		"0.015":  2,
	}
	for in, want := range cases {
		got, err := CentsFromDollars(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := CentsFromDollars("abc")
	require.Error(t, err)
	_, err = CentsFromDollars("-3")
	require.Error(t, err)
}
