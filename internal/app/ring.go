package app

// CountRing is a circular buffer for per-cycle in-range counts.
type CountRing struct {
	buf   []int
	pos   int
	count int
}

// NewCountRing creates a new circular buffer with the given capacity.
func NewCountRing(capacity int) *CountRing {
	return &CountRing{
		buf: make([]int, capacity),
	}
}

// Push adds a value to the ring buffer.
func (r *CountRing) Push(val int) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns all stored values, newest first.
func (r *CountRing) Values() []int {
	result := make([]int, 0, r.count)
	for i := 1; i <= r.count; i++ {
		idx := (r.pos - i + len(r.buf)) % len(r.buf)
		result = append(result, r.buf[idx])
	}
	return result
}

// Len returns the number of stored values.
func (r *CountRing) Len() int {
	return r.count
}
