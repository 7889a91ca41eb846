package kernel

import (
	"fmt"
	"math/rand"
)

// maxCellValue bounds the random cell values to [0, maxCellValue).
const maxCellValue = 100

// Matrix is a dense square matrix stored row by row.
type Matrix [][]float64

// Size returns the number of rows.
func (m Matrix) Size() int {
	return len(m)
}

// NewMatrix allocates a zeroed size x size matrix backed by one slice.
func NewMatrix(size int) (Matrix, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: matrix size %d", ErrNegativeInput, size)
	}
	backing := make([]float64, size*size)
	m := make(Matrix, size)
	for i := range m {
		m[i] = backing[i*size : (i+1)*size : (i+1)*size]
	}
	return m, nil
}

// NewRandomMatrix allocates a size x size matrix whose cells are drawn
// independently and uniformly from [0, 100) using rng.
func NewRandomMatrix(size int, rng *rand.Rand) (Matrix, error) {
	m, err := NewMatrix(size)
	if err != nil {
		return nil, err
	}
	for i := range m {
		row := m[i]
		for j := range row {
			row[j] = rng.Float64() * maxCellValue
		}
	}
	return m, nil
}

// Identity returns the size x size identity matrix.
func Identity(size int) (Matrix, error) {
	m, err := NewMatrix(size)
	if err != nil {
		return nil, err
	}
	for i := range m {
		m[i][i] = 1
	}
	return m, nil
}

// Multiply returns a*b. Both operands must be square and of the same
// dimension, otherwise an error wrapping ErrDimensionMismatch is returned.
// Inputs are never modified.
func Multiply(a, b Matrix) (Matrix, error) {
	if err := validateSquarePair(a, b); err != nil {
		return nil, err
	}
	result, err := NewMatrix(a.Size())
	if err != nil {
		return nil, err
	}
	multiplyRows(a, b, result, 0, a.Size())
	return result, nil
}

// multiplyRows fills result rows [lo, hi) with the standard i-j-k product.
func multiplyRows(a, b, result Matrix, lo, hi int) {
	size := a.Size()
	for i := lo; i < hi; i++ {
		ai := a[i]
		ri := result[i]
		for j := 0; j < size; j++ {
			var sum float64
			for k := 0; k < size; k++ {
				sum += ai[k] * b[k][j]
			}
			ri[j] = sum
		}
	}
}

func validateSquarePair(a, b Matrix) error {
	size := a.Size()
	if b.Size() != size {
		return fmt.Errorf("%w: a has %d rows, b has %d rows", ErrDimensionMismatch, size, b.Size())
	}
	for i := 0; i < size; i++ {
		if len(a[i]) != size {
			return fmt.Errorf("%w: row %d of a has length %d, want %d", ErrDimensionMismatch, i, len(a[i]), size)
		}
		if len(b[i]) != size {
			return fmt.Errorf("%w: row %d of b has length %d, want %d", ErrDimensionMismatch, i, len(b[i]), size)
		}
	}
	return nil
}
