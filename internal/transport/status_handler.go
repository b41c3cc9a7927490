// Package transport exposes the chain engine over HTTP and gRPC health.
package transport

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

const maxProofBodyBytes = 1 << 20

// StatusHandler serves chain state and inclusion checks as JSON.
type StatusHandler struct {
	chain     Chain
	network   model.Network
	logger    *zap.Logger
	marshaler gwruntime.Marshaler
}

// NewStatusHandler returns a StatusHandler instance.
func NewStatusHandler(chain Chain, network model.Network, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		chain:     chain,
		network:   network,
		logger:    logger.Named("status"),
		marshaler: &gwruntime.JSONBuiltin{},
	}
}

// Register adds the status routes to mux.
func (h *StatusHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/status", h.status},
		{http.MethodGet, "/v1/blocks/{hash}", h.block},
		{http.MethodGet, "/v1/mainchain/{height}", h.mainchainBlock},
		{http.MethodPost, "/v1/proofs/verify", h.verifyProof},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}

type pendingTargetResponse struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
	Epoch  uint64 `json:"epoch"`
	Target string `json:"target"`
}

type statusResponse struct {
	Network         string                 `json:"network"`
	Initialized     bool                   `json:"initialized"`
	MainchainHead   string                 `json:"mainchain_head,omitempty"`
	MainchainHeight uint64                 `json:"mainchain_height"`
	RootHeight      uint64                 `json:"root_height"`
	LastEpoch       uint64                 `json:"last_epoch"`
	LastTarget      string                 `json:"last_target,omitempty"`
	PendingTarget   *pendingTargetResponse `json:"pending_target,omitempty"`
}

type blockResponse struct {
	Hash           string `json:"hash"`
	Height         uint64 `json:"height"`
	Version        uint32 `json:"version"`
	PrevBlockHash  string `json:"prev_block_hash"`
	MerkleRoot     string `json:"merkle_root"`
	Time           uint32 `json:"time"`
	Bits           string `json:"bits"`
	Nonce          uint32 `json:"nonce"`
	CumulativeWork string `json:"cumulative_work"`
	Status         string `json:"status"`
	InMainchain    bool   `json:"in_mainchain"`
}

type verifyProofRequest struct {
	TxID  string `json:"txid"`
	Proof string `json:"proof"`
}

type verifyProofResponse struct {
	TxID  string        `json:"txid"`
	Block blockResponse `json:"block"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *StatusHandler) status(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	resp := statusResponse{Network: string(h.network), Initialized: h.chain.Initialized()}
	if resp.Initialized {
		resp.MainchainHead = h.chain.MainchainHead().String()
		resp.MainchainHeight = h.chain.MainchainHeight()
		resp.RootHeight = h.chain.RootHeight()
		resp.LastEpoch = h.chain.LastEpoch()
		resp.LastTarget = fmt.Sprintf("%064x", h.chain.LastTarget())
		if pending, ok := h.chain.PendingTarget(); ok {
			resp.PendingTarget = &pendingTargetResponse{
				Hash:   pending.Hash.String(),
				Height: pending.Height,
				Epoch:  pending.Epoch,
				Target: fmt.Sprintf("%064x", pending.Target),
			}
		}
	}
	h.write(w, http.StatusOK, resp)
}

func (h *StatusHandler) block(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	hash, err := parseHash(params["hash"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := h.chain.BlockInfo(*hash)
	if err != nil {
		h.writeError(w, errorStatus(err), err)
		return
	}
	h.write(w, http.StatusOK, newBlockResponse(rec))
}

func (h *StatusHandler) mainchainBlock(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	height, err := strconv.ParseUint(params["height"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid height %q", params["height"]))
		return
	}
	rec, err := h.chain.BlockByHeight(height)
	if err != nil {
		h.writeError(w, errorStatus(err), err)
		return
	}
	h.write(w, http.StatusOK, newBlockResponse(rec))
}

func (h *StatusHandler) verifyProof(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req verifyProofRequest
	body := http.MaxBytesReader(w, r.Body, maxProofBodyBytes)
	if err := h.marshaler.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	txID, err := parseHash(req.TxID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	proof, err := hex.DecodeString(req.Proof)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode proof: %w", err))
		return
	}

	rec, err := h.chain.VerifyTxInclusion(*txID, proof)
	if err != nil {
		h.writeError(w, errorStatus(err), err)
		return
	}
	h.write(w, http.StatusOK, verifyProofResponse{TxID: txID.String(), Block: newBlockResponse(rec)})
}

func newBlockResponse(rec model.BlockRecord) blockResponse {
	resp := blockResponse{
		Hash:          rec.Hash.String(),
		Height:        rec.Height,
		Version:       rec.Header.Version,
		PrevBlockHash: rec.Header.PrevBlockHash.String(),
		MerkleRoot:    rec.Header.MerkleRoot.String(),
		Time:          rec.Header.Time,
		Bits:          fmt.Sprintf("%08x", rec.Header.Bits),
		Nonce:         rec.Header.Nonce,
		Status:        string(rec.Status),
		InMainchain:   rec.InMainchain,
	}
	if rec.CumulativeWork != nil {
		resp.CumulativeWork = rec.CumulativeWork.String()
	}
	return resp
}

func parseHash(s string) (*chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("invalid hash %q", s)
	}
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return hash, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, model.ErrUnknownBlock):
		return http.StatusNotFound
	case errors.Is(err, model.ErrMalformedProof), errors.Is(err, model.ErrInvalidMerkleProof):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *StatusHandler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("status request failed", zap.Error(err))
	}
	h.write(w, status, errorResponse{Error: err.Error()})
}

func (h *StatusHandler) write(w http.ResponseWriter, status int, v any) {
	body, err := h.marshaler.Marshal(v)
	if err != nil {
		h.logger.Error("marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}
