package utils

import "golang.org/x/exp/constraints"

// TailSlice 只保留切片最后 max 个元素
func TailSlice[T any](slice []T, max int) []T {
	if max <= 0 {
		return slice[:0]
	}
	if len(slice) <= max {
		return slice
	}
	return slice[len(slice)-max:]
}

// Sum 求和
func Sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}
