// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic
transformations.
*/
package slice

// TryMap maps input through transform and stops at the first error.
//
// The result is never nil, so an empty input encodes as an empty list.
func TryMap[T any, U any](input []T, transform func(T) (U, error)) ([]U, error) {
	result := make([]U, 0, len(input))
	for _, v := range input {
		mapped, err := transform(v)
		if err != nil {
			return nil, err
		}
		result = append(result, mapped)
	}
	return result, nil
}
