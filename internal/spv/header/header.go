// Package header decodes, encodes and hashes 80-byte block headers.
package header

import (
	"bytes"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

// Parse decodes a raw header. The input must be exactly model.HeaderSize bytes.
func Parse(raw []byte) (model.BlockHeader, error) {
	if len(raw) != model.HeaderSize {
		return model.BlockHeader{}, &model.HeaderLengthError{Length: len(raw)}
	}

	var h wire.BlockHeader
	if err := h.Deserialize(bytes.NewReader(raw)); err != nil {
		return model.BlockHeader{}, fmt.Errorf("deserialize header: %w", err)
	}
	return FromWire(&h), nil
}

// ParseWithHash decodes a raw header and returns its block hash.
func ParseWithHash(raw []byte) (model.BlockHeader, chainhash.Hash, error) {
	h, err := Parse(raw)
	if err != nil {
		return model.BlockHeader{}, chainhash.Hash{}, err
	}
	return h, chainhash.DoubleHashH(raw), nil
}

// Serialize encodes a header into its 80-byte wire form.
func Serialize(h model.BlockHeader) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, model.HeaderSize))
	// Writes to a bytes.Buffer cannot fail.
	_ = ToWire(h).Serialize(buf)
	return buf.Bytes()
}

// Hash returns the double SHA-256 of the serialized header.
func Hash(h model.BlockHeader) chainhash.Hash {
	return chainhash.DoubleHashH(Serialize(h))
}

// ToWire converts a header into its btcd representation.
func ToWire(h model.BlockHeader) *wire.BlockHeader {
	return &wire.BlockHeader{
		Version:    int32(h.Version),
		PrevBlock:  h.PrevBlockHash,
		MerkleRoot: h.MerkleRoot,
		Timestamp:  time.Unix(int64(h.Time), 0),
		Bits:       h.Bits,
		Nonce:      h.Nonce,
	}
}

// FromWire converts a btcd header into the model representation.
func FromWire(h *wire.BlockHeader) model.BlockHeader {
	return model.BlockHeader{
		Version:       uint32(h.Version),
		PrevBlockHash: h.PrevBlock,
		MerkleRoot:    h.MerkleRoot,
		Time:          uint32(h.Timestamp.Unix()),
		Bits:          h.Bits,
		Nonce:         h.Nonce,
	}
}
