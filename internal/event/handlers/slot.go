package handlers

// Slot is a producer's handle on its installed handler set.
//
// The zero value is an uninstalled slot; firing it is a no-op. A slot is
// written by the binding installer during initialization and only read
// afterwards. It performs no locking: installation must happen before any
// goroutine fires it.
type Slot[S, A any] struct {
	set *Set[S, A]
}

// Install replaces the slot's handler set. The last install wins.
func (s *Slot[S, A]) Install(set *Set[S, A]) {
	s.set = set
}

// Reset empties the slot.
func (s *Slot[S, A]) Reset() {
	s.set = nil
}

// Release empties the slot only if set is the installed set. It reports
// whether the slot was emptied.
func (s *Slot[S, A]) Release(set *Set[S, A]) bool {
	if s == nil || set == nil || s.set != set {
		return false
	}
	s.set = nil
	return true
}

// Installed reports whether a handler set has been installed.
func (s *Slot[S, A]) Installed() bool {
	return s != nil && s.set != nil
}

// Handlers returns the installed set, or nil.
func (s *Slot[S, A]) Handlers() *Set[S, A] {
	if s == nil {
		return nil
	}
	return s.set
}

// Len returns the number of installed handlers.
func (s *Slot[S, A]) Len() int {
	if s == nil {
		return 0
	}
	return s.set.Len()
}

// Fire raises the event: every installed handler runs in order with
// sender and args. An uninstalled or empty slot does nothing.
func (s *Slot[S, A]) Fire(sender S, args A) error {
	if s == nil {
		return nil
	}
	return s.set.Fire(sender, args)
}

// FireEmpty raises a payload-less event. It is identical to
// slot.Fire(sender, Empty{}).
func FireEmpty[S any](slot *Slot[S, Empty], sender S) error {
	return slot.Fire(sender, Empty{})
}
