package chain

import "sync"

// sequencer runs observer deliveries one at a time in ticket order. Tickets
// are taken under Engine.mu so their order is the commit order.
type sequencer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	issued uint64
	turn   uint64
}

func newSequencer() *sequencer {
	s := &sequencer{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *sequencer) ticket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.issued
	s.issued++
	return t
}

// do waits for ticket's turn, runs fn and passes the turn on. Every issued
// ticket must be redeemed or later deliveries block forever.
func (s *sequencer) do(ticket uint64, fn func()) {
	s.mu.Lock()
	for s.turn != ticket {
		s.cond.Wait()
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.turn++
		s.cond.Broadcast()
		s.mu.Unlock()
	}()
	fn()
}
