package history

// stack is a LIFO with a fixed capacity backed by a circular buffer. Pushing
// onto a full stack overwrites the oldest element.
type stack[T any] struct {
	data  []T
	head  int // Next write position
	count int
}

func newStack[T any](capacity int) *stack[T] {
	return &stack[T]{data: make([]T, capacity)}
}

// push adds v, overwriting the oldest element when the stack is full.
func (s *stack[T]) push(v T) {
	if s.count < len(s.data) {
		s.count++
	}
	s.data[s.head] = v
	s.head = (s.head + 1) % len(s.data)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if s.count == 0 {
		return zero, false
	}
	s.head = (s.head - 1 + len(s.data)) % len(s.data)
	v := s.data[s.head]
	s.data[s.head] = zero
	s.count--
	return v, true
}

func (s *stack[T]) peek() (T, bool) {
	var zero T
	if s.count == 0 {
		return zero, false
	}
	return s.data[(s.head-1+len(s.data))%len(s.data)], true
}

// slice returns the elements oldest first.
func (s *stack[T]) slice() []T {
	out := make([]T, 0, s.count)
	start := (s.head - s.count + len(s.data)) % len(s.data)
	for i := range s.count {
		out = append(out, s.data[(start+i)%len(s.data)])
	}
	return out
}

func (s *stack[T]) clear() {
	var zero T
	for i := range s.data {
		s.data[i] = zero
	}
	s.head, s.count = 0, 0
}

func (s *stack[T]) len() int { return s.count }
