package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2}, TailSlice([]int{1, 2}, 3))
	assert.Equal(t, []int{3, 4}, TailSlice([]int{1, 2, 3, 4}, 2))
	assert.Empty(t, TailSlice([]int{1, 2}, 0))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 6, Sum([]int{1, 2, 3}))
	assert.InDelta(t, 0.75, Sum([]float64{0.25, 0.5}), 1e-12)
	assert.Zero(t, Sum[int](nil))
}
