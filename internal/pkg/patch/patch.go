package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalesceSlice is Coalesce for optional slices: a nil pointer keeps fallback,
// a pointer to an empty slice clears it.
func CoalesceSlice[T any](ptr *[]T, fallback []T) []T {
	if ptr == nil {
		return fallback
	}
	out := make([]T, len(*ptr))
	copy(out, *ptr)
	return out
}
