package store

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

// journal collects undo steps for the mutations made inside Update.
type journal struct {
	undo []func()
	// saved holds the records whose pre-transaction value is already captured.
	saved        map[chainhash.Hash]struct{}
	scalarsSaved bool
}

func (j *journal) add(fn func()) {
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// Update runs fn as a single transaction: when fn returns an error every
// mutation it made through the store is reverted and the error is returned.
// Updates do not nest.
func (s *Store) Update(fn func() error) error {
	if s.journal != nil {
		return fn()
	}

	s.journal = &journal{saved: make(map[chainhash.Hash]struct{})}
	j := s.journal
	defer func() {
		s.journal = nil
	}()

	if err := fn(); err != nil {
		j.rollback()
		return err
	}
	return nil
}

func (s *Store) recordBlock(rec *model.BlockRecord) {
	if s.journal == nil {
		return
	}
	if _, ok := s.journal.saved[rec.Hash]; ok {
		return
	}
	s.journal.saved[rec.Hash] = struct{}{}
	prev := *rec
	s.journal.add(func() { *rec = prev })
}

func (s *Store) recordScalars() {
	if s.journal == nil || s.journal.scalarsSaved {
		return
	}
	s.journal.scalarsSaved = true
	initialized, root, rootHeight, head, nextActive := s.initialized, s.root, s.rootHeight, s.head, s.nextActive
	s.journal.add(func() {
		s.initialized = initialized
		s.root = root
		s.rootHeight = rootHeight
		s.head = head
		s.nextActive = nextActive
	})
}
