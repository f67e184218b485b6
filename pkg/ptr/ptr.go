package ptr

// Ptr returns a pointer to a copy of v
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value pointed to by p, or def when p is nil
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
