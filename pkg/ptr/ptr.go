package ptr

// NonZero возвращает указатель на значение или nil, если значение нулевое
func NonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
