// Package store keeps every validated block, the height index of the current
// mainchain and the confirmation status of each block.
package store

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

// InsertResult describes how an insertion changed the mainchain.
type InsertResult struct {
	Record *model.BlockRecord
	// HeadChanged is set when the inserted block became the mainchain head.
	HeadChanged bool
	// ForkHeight is the height of the last block shared by the old and new
	// mainchain. It equals the old head height on a plain extension.
	ForkHeight uint64
	// Detached counts the blocks that left the mainchain.
	Detached uint64
}

// Store is not safe for concurrent use; the chain engine serializes access.
type Store struct {
	pendingBlockCount uint64

	blocks map[chainhash.Hash]*model.BlockRecord
	// mainchain[i] is the mainchain hash at height rootHeight+i.
	mainchain []chainhash.Hash

	initialized bool
	root        chainhash.Hash
	rootHeight  uint64
	head        chainhash.Hash
	// nextActive is the lowest mainchain height still Pending.
	nextActive uint64

	journal *journal
}

// New creates an empty store. Mainchain blocks become Active once
// pendingBlockCount blocks are built on top of them.
func New(pendingBlockCount uint64) *Store {
	return &Store{
		pendingBlockCount: pendingBlockCount,
		blocks:            make(map[chainhash.Hash]*model.BlockRecord),
	}
}

// Initialize stores the root block the chain grows from.
func (s *Store) Initialize(h model.BlockHeader, hash chainhash.Hash, height uint64, cumulativeWork *big.Int) (*model.BlockRecord, error) {
	if s.initialized {
		return nil, model.ErrAlreadyInitialized
	}

	rec := &model.BlockRecord{
		Header:         h,
		Hash:           hash,
		Height:         height,
		CumulativeWork: new(big.Int).Set(cumulativeWork),
		Status:         model.BlockPending,
		InMainchain:    true,
	}
	s.recordScalars()
	s.initialized = true
	s.root = hash
	s.rootHeight = height
	s.head = hash
	s.nextActive = height
	s.putBlock(rec)
	s.pushMainchain(hash)
	s.sweep()
	return rec, nil
}

// Insert stores a validated block. The caller supplies height and cumulative
// work. A block with strictly more work than the head becomes the new head;
// otherwise it is kept off the mainchain.
func (s *Store) Insert(h model.BlockHeader, hash chainhash.Hash, height uint64, cumulativeWork *big.Int) (InsertResult, error) {
	if !s.initialized {
		return InsertResult{}, model.ErrNotInitialized
	}
	if _, ok := s.blocks[hash]; ok {
		return InsertResult{}, &model.HashError{Kind: model.ErrBlockAlreadyExists, Hash: hash}
	}
	if _, ok := s.blocks[h.PrevBlockHash]; !ok {
		return InsertResult{}, &model.HashError{Kind: model.ErrPrevBlockDoesNotExist, Hash: h.PrevBlockHash}
	}

	rec := &model.BlockRecord{
		Header:         h,
		Hash:           hash,
		Height:         height,
		CumulativeWork: new(big.Int).Set(cumulativeWork),
		Status:         model.BlockStale,
	}
	s.putBlock(rec)

	head := s.blocks[s.head]
	if rec.CumulativeWork.Cmp(head.CumulativeWork) <= 0 {
		return InsertResult{Record: rec, ForkHeight: head.Height}, nil
	}

	forkHeight, detached := s.reorganize(rec)
	s.sweep()
	return InsertResult{Record: rec, HeadChanged: true, ForkHeight: forkHeight, Detached: detached}, nil
}

// reorganize installs tip as the mainchain head. It walks tip's ancestry back
// to the first mainchain block, detaches everything above that block and
// attaches the new branch.
func (s *Store) reorganize(tip *model.BlockRecord) (uint64, uint64) {
	var branch []*model.BlockRecord
	fork := tip
	for !fork.InMainchain {
		branch = append(branch, fork)
		fork = s.blocks[fork.Header.PrevBlockHash]
	}

	headHeight := s.HeadHeight()
	detached := headHeight - fork.Height
	for height := headHeight; height > fork.Height; height-- {
		s.setMembership(s.blocks[s.popMainchain()], false)
	}
	for i := len(branch) - 1; i >= 0; i-- {
		s.setMembership(branch[i], true)
		s.pushMainchain(branch[i].Hash)
	}

	s.recordScalars()
	s.head = tip.Hash
	if s.nextActive > fork.Height+1 {
		s.nextActive = fork.Height + 1
	}
	return fork.Height, detached
}

// sweep marks every mainchain block buried under pendingBlockCount blocks Active.
func (s *Store) sweep() {
	headHeight := s.HeadHeight()
	if s.nextActive+s.pendingBlockCount > headHeight {
		return
	}
	s.recordScalars()
	for ; s.nextActive+s.pendingBlockCount <= headHeight; s.nextActive++ {
		hash, _ := s.HashByHeight(s.nextActive)
		s.setStatus(s.blocks[hash], model.BlockActive)
	}
}

func (s *Store) setMembership(rec *model.BlockRecord, inMainchain bool) {
	s.recordBlock(rec)
	rec.InMainchain = inMainchain
	if inMainchain {
		rec.Status = model.BlockPending
	} else {
		rec.Status = model.BlockStale
	}
}

func (s *Store) setStatus(rec *model.BlockRecord, status model.BlockStatus) {
	s.recordBlock(rec)
	rec.Status = status
}

func (s *Store) putBlock(rec *model.BlockRecord) {
	s.blocks[rec.Hash] = rec
	if s.journal != nil {
		s.journal.add(func() { delete(s.blocks, rec.Hash) })
	}
}

func (s *Store) pushMainchain(hash chainhash.Hash) {
	s.mainchain = append(s.mainchain, hash)
	if s.journal != nil {
		s.journal.add(func() { s.mainchain = s.mainchain[:len(s.mainchain)-1] })
	}
}

func (s *Store) popMainchain() chainhash.Hash {
	last := len(s.mainchain) - 1
	hash := s.mainchain[last]
	s.mainchain = s.mainchain[:last]
	if s.journal != nil {
		s.journal.add(func() { s.mainchain = append(s.mainchain, hash) })
	}
	return hash
}

// Exists reports whether hash is stored.
func (s *Store) Exists(hash chainhash.Hash) bool {
	_, ok := s.blocks[hash]
	return ok
}

// Block returns the stored record. Callers must not modify it.
func (s *Store) Block(hash chainhash.Hash) (*model.BlockRecord, bool) {
	rec, ok := s.blocks[hash]
	return rec, ok
}

func (s *Store) Height(hash chainhash.Hash) (uint64, bool) {
	rec, ok := s.blocks[hash]
	if !ok {
		return 0, false
	}
	return rec.Height, true
}

func (s *Store) Status(hash chainhash.Hash) (model.BlockStatus, bool) {
	rec, ok := s.blocks[hash]
	if !ok {
		return "", false
	}
	return rec.Status, true
}

func (s *Store) CumulativeWork(hash chainhash.Hash) (*big.Int, bool) {
	rec, ok := s.blocks[hash]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(rec.CumulativeWork), true
}

func (s *Store) IsInMainchain(hash chainhash.Hash) bool {
	rec, ok := s.blocks[hash]
	return ok && rec.InMainchain
}

// HashByHeight returns the mainchain hash at height.
func (s *Store) HashByHeight(height uint64) (chainhash.Hash, bool) {
	if !s.initialized || height < s.rootHeight || height-s.rootHeight >= uint64(len(s.mainchain)) {
		return chainhash.Hash{}, false
	}
	return s.mainchain[height-s.rootHeight], true
}

func (s *Store) Head() chainhash.Hash {
	return s.head
}

func (s *Store) HeadHeight() uint64 {
	if !s.initialized {
		return 0
	}
	return s.rootHeight + uint64(len(s.mainchain)) - 1
}

func (s *Store) Root() (chainhash.Hash, uint64) {
	return s.root, s.rootHeight
}

func (s *Store) Initialized() bool {
	return s.initialized
}

// Ancestor returns the block at height on hash's chain. Side-chain blocks are
// walked back to the mainchain, after which the height index is used.
func (s *Store) Ancestor(hash chainhash.Hash, height uint64) (*model.BlockRecord, bool) {
	rec, ok := s.blocks[hash]
	if !ok || height > rec.Height || height < s.rootHeight {
		return nil, false
	}
	for !rec.InMainchain {
		if rec.Height == height {
			return rec, true
		}
		rec = s.blocks[rec.Header.PrevBlockHash]
	}
	ancestor, ok := s.HashByHeight(height)
	if !ok {
		return nil, false
	}
	return s.blocks[ancestor], true
}

// Timestamps returns up to n timestamps of hash and its ancestors, newest first.
func (s *Store) Timestamps(hash chainhash.Hash, n int) []uint32 {
	times := make([]uint32, 0, n)
	rec, ok := s.blocks[hash]
	for ok && len(times) < n {
		times = append(times, rec.Header.Time)
		if rec.Hash == s.root {
			break
		}
		rec, ok = s.blocks[rec.Header.PrevBlockHash]
	}
	return times
}
