package collections

import "slices"

// TransformSlice maps every element of slice through transformFn.
func TransformSlice[TInput any, TOutput any](slice []TInput, transformFn func(TInput) TOutput) []TOutput {
	if len(slice) == 0 {
		return nil
	}
	result := make([]TOutput, 0, len(slice))
	for _, val := range slice {
		result = append(result, transformFn(val))
	}
	return result
}

// Filter returns the elements of slice for which keepFn is true, in order.
// It returns nil when nothing is kept.
func Filter[T any](slice []T, keepFn func(T) bool) []T {
	var result []T
	for _, val := range slice {
		if keepFn(val) {
			result = append(result, val)
		}
	}
	return result
}

// SortedCopy returns a stably sorted copy of slice and leaves slice untouched.
// cmpFn follows the slices.SortStableFunc convention.
func SortedCopy[T any](slice []T, cmpFn func(T, T) int) []T {
	result := slices.Clone(slice)
	slices.SortStableFunc(result, cmpFn)
	return result
}
