package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Float](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Float](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// Widen converts float32 samples into dst as float64, growing dst if needed.
func Widen(dst []float64, src []float32) []float64 {
	dst = EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}

	return dst
}
