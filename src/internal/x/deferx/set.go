package deferx

// Set is a dynamic set of cleanup functions that are invoked in the reverse
// order to which they were added.
type Set struct {
	functions []func()
}

// Add a function to the set.
func (s *Set) Add(fn func()) {
	if fn != nil {
		s.functions = append(s.functions, fn)
	}
}

// AddE adds a function that returns an error to the set. If fn fails, the
// error is passed to report, if non-nil.
func (s *Set) AddE(fn func() error, report func(error)) {
	if fn == nil {
		return
	}

	s.Add(func() {
		if err := fn(); err != nil && report != nil {
			report(err)
		}
	})
}

// Len returns the number of functions in the set.
func (s *Set) Len() int {
	return len(s.functions)
}

// Detach returns a function that invokes all functions in the set, then
// empties the set.
func (s *Set) Detach() func() {
	functions := s.functions
	s.functions = nil

	return func() {
		run(functions)
	}
}

// Run invokes all functions in the set, unless Detach() has been called, then
// empties the set.
func (s *Set) Run() {
	functions := s.functions
	s.functions = nil

	run(functions)
}

func run(functions []func()) {
	for i := len(functions) - 1; i >= 0; i-- {
		functions[i]()
	}
}
