package model

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrorKind identifies a kind of chain-state failure. It satisfies the error
// interface so it can be matched with errors.Is.
type ErrorKind string

// These constants are used to identify a specific failure.
const (
	// ErrInvalidHeaderLength indicates a raw header is not exactly 80 bytes.
	ErrInvalidHeaderLength = ErrorKind("ErrInvalidHeaderLength")

	// ErrAlreadyInitialized indicates an initializer was invoked twice.
	ErrAlreadyInitialized = ErrorKind("ErrAlreadyInitialized")

	// ErrNotInitialized indicates a mutation before initialization.
	ErrNotInitialized = ErrorKind("ErrNotInitialized")

	// ErrInvalidInitialBlockHeight indicates a checkpoint height that is not
	// a positive multiple of the retarget interval.
	ErrInvalidInitialBlockHeight = ErrorKind("ErrInvalidInitialBlockHeight")

	// ErrNotATargetAdjustmentBlock indicates a height that does not open an epoch.
	ErrNotATargetAdjustmentBlock = ErrorKind("ErrNotATargetAdjustmentBlock")

	// ErrUnexpectedTargetEpoch indicates a retarget proposal for an epoch other
	// than the one following the last confirmed epoch.
	ErrUnexpectedTargetEpoch = ErrorKind("ErrUnexpectedTargetEpoch")

	// ErrInvalidEpochTimeParameters indicates an epoch whose end time is not
	// after its start time.
	ErrInvalidEpochTimeParameters = ErrorKind("ErrInvalidEpochTimeParameters")

	// ErrInvalidConfirmedBlockHash indicates a confirmation for a hash that
	// does not key the pending target.
	ErrInvalidConfirmedBlockHash = ErrorKind("ErrInvalidConfirmedBlockHash")

	// ErrPrevBlockDoesNotExist indicates a header whose parent is unknown.
	ErrPrevBlockDoesNotExist = ErrorKind("ErrPrevBlockDoesNotExist")

	// ErrUnexpectedBlockHeight indicates a height that is not one above the
	// parent's stored height.
	ErrUnexpectedBlockHeight = ErrorKind("ErrUnexpectedBlockHeight")

	// ErrBlockAlreadyExists indicates a header that is already stored.
	ErrBlockAlreadyExists = ErrorKind("ErrBlockAlreadyExists")

	// ErrInvalidTarget indicates header bits that differ from the prescribed target.
	ErrInvalidTarget = ErrorKind("ErrInvalidTarget")

	// ErrInvalidBlockHash indicates a hash above the prescribed target.
	ErrInvalidBlockHash = ErrorKind("ErrInvalidBlockHash")

	// ErrInvalidBlockTime indicates a timestamp not after the median time past.
	ErrInvalidBlockTime = ErrorKind("ErrInvalidBlockTime")

	// ErrEmptyBlockHeaderArray indicates an empty batch.
	ErrEmptyBlockHeaderArray = ErrorKind("ErrEmptyBlockHeaderArray")

	// ErrInvalidBlockHeadersOrder indicates a batch that does not link header to header.
	ErrInvalidBlockHeadersOrder = ErrorKind("ErrInvalidBlockHeadersOrder")

	// ErrUnknownBlock indicates a lookup of a block that is not stored.
	ErrUnknownBlock = ErrorKind("ErrUnknownBlock")

	// ErrMalformedProof indicates proof bytes inconsistent with a partial merkle tree.
	ErrMalformedProof = ErrorKind("ErrMalformedProof")

	// ErrInvalidMerkleProof indicates a proof that does not hash to the block's merkle root.
	ErrInvalidMerkleProof = ErrorKind("ErrInvalidMerkleProof")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// HeaderLengthError reports a raw header of the wrong size.
type HeaderLengthError struct {
	Length int
}

func (e *HeaderLengthError) Error() string {
	return fmt.Sprintf("invalid header length %d, want %d", e.Length, HeaderSize)
}

func (e *HeaderLengthError) Unwrap() error { return ErrInvalidHeaderLength }

// HeightError reports a height rejected by epoch bookkeeping.
type HeightError struct {
	Kind   ErrorKind
	Height uint64
}

func (e *HeightError) Error() string {
	return fmt.Sprintf("%s: height %d", e.Kind, e.Height)
}

func (e *HeightError) Unwrap() error { return e.Kind }

// EpochTimeError reports a retarget epoch with non-increasing bounds.
type EpochTimeError struct {
	Start uint32
	End   uint32
}

func (e *EpochTimeError) Error() string {
	return fmt.Sprintf("epoch end time %d is not after start time %d", e.End, e.Start)
}

func (e *EpochTimeError) Unwrap() error { return ErrInvalidEpochTimeParameters }

// HashError reports a failure keyed by a single block hash.
type HashError struct {
	Kind ErrorKind
	Hash chainhash.Hash
}

func (e *HashError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Hash)
}

func (e *HashError) Unwrap() error { return e.Kind }

// TargetError reports header bits that decode to an unexpected target.
type TargetError struct {
	Actual   *big.Int
	Expected *big.Int
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("block target %064x does not match expected %064x", e.Actual, e.Expected)
}

func (e *TargetError) Unwrap() error { return ErrInvalidTarget }

// BlockHashError reports a block hash above its target.
type BlockHashError struct {
	Hash   chainhash.Hash
	Target *big.Int
}

func (e *BlockHashError) Error() string {
	return fmt.Sprintf("block hash %s is higher than target %064x", e.Hash, e.Target)
}

func (e *BlockHashError) Unwrap() error { return ErrInvalidBlockHash }

// BlockTimeError reports a timestamp at or below the median time past.
type BlockTimeError struct {
	Time       uint32
	MedianTime uint32
}

func (e *BlockTimeError) Error() string {
	return fmt.Sprintf("block time %d is not after median time %d", e.Time, e.MedianTime)
}

func (e *BlockTimeError) Unwrap() error { return ErrInvalidBlockTime }

// HeaderOrderError reports a batch header that does not extend its predecessor.
type HeaderOrderError struct {
	Index         int
	PrevBlockHash chainhash.Hash
	Expected      chainhash.Hash
}

func (e *HeaderOrderError) Error() string {
	return fmt.Sprintf("header %d links to %s, want %s", e.Index, e.PrevBlockHash, e.Expected)
}

func (e *HeaderOrderError) Unwrap() error { return ErrInvalidBlockHeadersOrder }

// ProofError reports a structural problem with merkle proof bytes.
type ProofError struct {
	Reason string
}

func (e *ProofError) Error() string {
	return "malformed merkle proof: " + e.Reason
}

func (e *ProofError) Unwrap() error { return ErrMalformedProof }
