package workload

import (
	"context"
	"errors"
	"math"
)

// ErrNegativeInput is returned by Sqrt for inputs below zero.
var ErrNegativeInput = errors.New("square root of a negative number")

// Sqrt returns the square root of x.
func Sqrt(_ context.Context, x float64) (float64, error) {
	if x < 0 {
		return 0, ErrNegativeInput
	}
	return math.Sqrt(x), nil
}
