// Package utils holds small helpers for the optional fields of partial updates.
package utils

// Value dereferences v, returning the zero value for nil
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// ValueOr dereferences v, returning fallback for nil
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// MapPtr applies fn to the value behind v. Nil stays nil so absent fields remain absent.
func MapPtr[T any](v *T, fn func(T) T) *T {
	if v == nil {
		return nil
	}
	out := fn(*v)
	return &out
}
