// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Optional Lang columns (description, en) travel as *string, so the helpers
here convert between pointers, literals and untyped values.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a literal to a field that expects a
// pointer (e.g. pointer.To("Add")).
func To[T any](v T) *T {
	return &v
}

// Any dereferences p into an untyped value, or returns an untyped nil when p
// is nil. Encoders such as structpb treat the result as a JSON null.
func Any[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
