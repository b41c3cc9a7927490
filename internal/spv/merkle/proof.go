// Package merkle turns BIP37 merkleblock bytes into an inclusion path for a
// single transaction and verifies such paths against a merkle root.
package merkle

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

// Direction tells on which side of the running hash a sibling is concatenated.
type Direction uint8

const (
	// SiblingRight: the running hash is the left node.
	SiblingRight Direction = iota
	// SiblingLeft: the running hash is the right node.
	SiblingLeft
	// SiblingSelf: the running hash is the last node of an odd-width level and
	// is paired with itself. The sibling slot holds the zero hash.
	SiblingSelf
)

func (d Direction) String() string {
	switch d {
	case SiblingRight:
		return "right"
	case SiblingLeft:
		return "left"
	case SiblingSelf:
		return "self"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Proof is the inclusion path of TxID, ordered from the leaf up to the root.
type Proof struct {
	Header     model.BlockHeader
	TxID       chainhash.Hash
	TxIndex    uint32
	TxCount    uint32
	Siblings   []chainhash.Hash
	Directions []Direction
}

// ParseProof decodes merkleblock bytes (as returned by gettxoutproof) and
// extracts the path of txID. The flag bits and hashes must be consumed
// exactly and txID must be one of the matched leaves.
func ParseProof(txID chainhash.Hash, raw []byte) (Proof, error) {
	r := bytes.NewReader(raw)
	var msg wire.MsgMerkleBlock
	if err := msg.BtcDecode(r, wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return Proof{}, &model.ProofError{Reason: err.Error()}
	}
	if r.Len() != 0 {
		return Proof{}, &model.ProofError{Reason: fmt.Sprintf("%d trailing bytes", r.Len())}
	}
	if msg.Transactions == 0 {
		return Proof{}, &model.ProofError{Reason: "zero transactions"}
	}
	if uint64(len(msg.Hashes)) > uint64(msg.Transactions) {
		return Proof{}, &model.ProofError{Reason: fmt.Sprintf("%d hashes for %d transactions", len(msg.Hashes), msg.Transactions)}
	}
	if len(msg.Flags)*8 < len(msg.Hashes) {
		return Proof{}, &model.ProofError{Reason: "fewer flag bits than hashes"}
	}

	t := &traversal{
		txCount: msg.Transactions,
		hashes:  msg.Hashes,
		flags:   msg.Flags,
		target:  txID,
	}
	if _, _, err := t.walk(treeHeight(msg.Transactions), 0); err != nil {
		return Proof{}, err
	}
	if t.hashPos != len(msg.Hashes) {
		return Proof{}, &model.ProofError{Reason: fmt.Sprintf("%d unused hashes", len(msg.Hashes)-t.hashPos)}
	}
	if (t.bitPos+7)/8 != len(msg.Flags) {
		return Proof{}, &model.ProofError{Reason: "unused flag bytes"}
	}
	if !t.found {
		return Proof{}, &model.ProofError{Reason: fmt.Sprintf("transaction %s is not matched by the proof", txID)}
	}

	return Proof{
		Header:     header.FromWire(&msg.Header),
		TxID:       txID,
		TxIndex:    t.txIndex,
		TxCount:    msg.Transactions,
		Siblings:   t.siblings,
		Directions: t.directions,
	}, nil
}

// Verify folds the path from the leaf and compares the result with root.
func Verify(p Proof, root chainhash.Hash) bool {
	if len(p.Siblings) != len(p.Directions) {
		return false
	}
	h := p.TxID
	for i, sibling := range p.Siblings {
		switch p.Directions[i] {
		case SiblingRight:
			h = hashPair(h, sibling)
		case SiblingLeft:
			h = hashPair(sibling, h)
		case SiblingSelf:
			h = hashPair(h, h)
		default:
			return false
		}
	}
	return h == root
}

type traversal struct {
	txCount uint32
	hashes  []*chainhash.Hash
	flags   []byte
	target  chainhash.Hash

	hashPos int
	bitPos  int

	found      bool
	txIndex    uint32
	siblings   []chainhash.Hash
	directions []Direction
}

// walk visits the node at (height, pos) depth first and returns its hash and
// whether the target leaf lies beneath it. Siblings are recorded while the
// recursion unwinds, so they come out leaf first.
func (t *traversal) walk(height uint32, pos uint32) (chainhash.Hash, bool, error) {
	if t.bitPos >= len(t.flags)*8 {
		return chainhash.Hash{}, false, &model.ProofError{Reason: "ran out of flag bits"}
	}
	descend := t.flags[t.bitPos/8]&(1<<(t.bitPos%8)) != 0
	t.bitPos++

	if height == 0 || !descend {
		if t.hashPos >= len(t.hashes) {
			return chainhash.Hash{}, false, &model.ProofError{Reason: "ran out of hashes"}
		}
		h := *t.hashes[t.hashPos]
		t.hashPos++
		if height == 0 && descend && h == t.target && !t.found {
			t.found = true
			t.txIndex = pos
			return h, true, nil
		}
		return h, false, nil
	}

	left, inLeft, err := t.walk(height-1, pos*2)
	if err != nil {
		return chainhash.Hash{}, false, err
	}
	if pos*2+1 >= treeWidth(t.txCount, height-1) {
		if inLeft {
			t.siblings = append(t.siblings, chainhash.Hash{})
			t.directions = append(t.directions, SiblingSelf)
		}
		return hashPair(left, left), inLeft, nil
	}

	right, inRight, err := t.walk(height-1, pos*2+1)
	if err != nil {
		return chainhash.Hash{}, false, err
	}
	// CVE-2012-2459: identical siblings are only legal as an odd-width tail.
	if left == right {
		return chainhash.Hash{}, false, &model.ProofError{Reason: "duplicate sibling hashes"}
	}
	switch {
	case inLeft:
		t.siblings = append(t.siblings, right)
		t.directions = append(t.directions, SiblingRight)
	case inRight:
		t.siblings = append(t.siblings, left)
		t.directions = append(t.directions, SiblingLeft)
	}
	return hashPair(left, right), inLeft || inRight, nil
}

func treeWidth(txCount uint32, height uint32) uint32 {
	return uint32((uint64(txCount) + (1 << height) - 1) >> height)
}

func treeHeight(txCount uint32) uint32 {
	var height uint32
	for treeWidth(txCount, height) > 1 {
		height++
	}
	return height
}

func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}
