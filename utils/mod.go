package utils

// FindIndexFunc returns the index of the first element matching pred, or -1.
func FindIndexFunc[T any](slice []T, pred func(T) bool) int {
	for i, v := range slice {
		if pred(v) {
			return i
		}
	}
	return -1
}

// Shuffled returns a shuffled copy of slice. shuffle has the signature of rand.Shuffle.
func Shuffled[T any](slice []T, shuffle func(n int, swap func(i, j int))) []T {
	out := append([]T(nil), slice...)
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
