package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibonacci_BaseCases(t *testing.T) {
	f0, err := Fibonacci(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), f0)

	f1, err := Fibonacci(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), f1)
}

func TestFibonacci_Recurrence(t *testing.T) {
	for n := 2; n <= 25; n++ {
		fn, err := Fibonacci(n)
		require.NoError(t, err)
		fn1, err := Fibonacci(n - 1)
		require.NoError(t, err)
		fn2, err := Fibonacci(n - 2)
		require.NoError(t, err)

		assert.Equalf(t, fn1+fn2, fn, "fibonacci(%d)", n)
	}
}

func TestFibonacci_KnownValues(t *testing.T) {
	tests := []struct {
		n    int
		want uint64
	}{
		{n: 2, want: 1},
		{n: 10, want: 55},
		{n: 20, want: 6765},
		{n: 30, want: 832040},
	}

	for _, tt := range tests {
		got, err := Fibonacci(tt.n)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "fibonacci(%d)", tt.n)
	}
}

func TestFibonacci_NegativeInput(t *testing.T) {
	_, err := Fibonacci(-1)
	require.ErrorIs(t, err, ErrNegativeInput)
}
