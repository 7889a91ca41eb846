package kernel

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{n: -7, want: false},
		{n: 0, want: false},
		{n: 1, want: false},
		{n: 2, want: true},
		{n: 3, want: true},
		{n: 4, want: false},
		{n: 9, want: false},
		{n: 25, want: false},
		{n: 97, want: true},
		{n: 7919, want: true},
		{n: 7921, want: false}, // 89 * 89
		{n: 46349 * 46349, want: false},
		{n: math.MaxInt32, want: true},
		{n: math.MaxInt32 - 1, want: false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, IsPrime(tt.n), "IsPrime(%d)", tt.n)
	}
}

func TestCountPrimes(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{limit: -5, want: 0},
		{limit: 1, want: 0},
		{limit: 2, want: 1},
		{limit: 10, want: 4},
		{limit: 100, want: 25},
		{limit: 100000, want: 9592},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, CountPrimes(tt.limit), "CountPrimes(%d)", tt.limit)
	}
}

func TestParallel_CountPrimesMatchesSerial(t *testing.T) {
	p := NewParallel(4)

	for _, limit := range []int{-1, 1, 2, 3, 10, 97, 1000, 12345} {
		got, err := p.CountPrimes(context.Background(), limit)
		require.NoError(t, err)
		assert.Equalf(t, CountPrimes(limit), got, "parallel CountPrimes(%d)", limit)
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		n      int
		want   []span
	}{
		{name: "empty range", lo: 5, hi: 5, n: 3, want: nil},
		{name: "even split", lo: 0, hi: 6, n: 3, want: []span{{0, 2}, {2, 4}, {4, 6}}},
		{name: "remainder goes first", lo: 0, hi: 7, n: 3, want: []span{{0, 3}, {3, 5}, {5, 7}}},
		{name: "more spans than items", lo: 2, hi: 4, n: 8, want: []span{{2, 3}, {3, 4}}},
		{name: "zero spans clamps to one", lo: 0, hi: 4, n: 0, want: []span{{0, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRange(tt.lo, tt.hi, tt.n))
		})
	}
}
