// Package ledger holds the optional on-chain vote attestation client. The
// voting service only depends on the Client interface; when no contract is
// configured the Disabled variant is wired instead of branching on
// configuration inline.
package ledger

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/logger"
)

// Client submits a vote content hash to an external append-only ledger and
// blocks until the transaction is confirmed or the context expires.
type Client interface {
	// Submit returns the ledger transaction reference for the given hash.
	Submit(ctx context.Context, hash string) (string, error)

	// Enabled reports whether submissions actually reach a ledger.
	Enabled() bool
}

// VoteHash computes the content hash submitted to the ledger for one cast
// vote. The pipe separator keeps the tuple unambiguous.
func VoteHash(userID, eventID, candidateID uuid.UUID) string {
	sum := sha256.Sum256([]byte(userID.String() + "|" + eventID.String() + "|" + candidateID.String()))
	return hex.EncodeToString(sum[:])
}

// FromConfig returns the client matching the configuration: an RPC-backed
// client when a contract address and endpoint are set, Disabled otherwise.
func FromConfig(cfg *config.Config) Client {
	if !cfg.LedgerEnabled() {
		return Disabled{}
	}
	return NewRPCClient(cfg.Ledger.RPCURL, cfg.Ledger.ContractAddress, cfg.Ledger.PrivateKey, cfg.Ledger.Timeout)
}

// Disabled is the no-op variant used when no contract is configured. Votes
// are then recorded locally without a transaction reference.
type Disabled struct{}

func (Disabled) Submit(ctx context.Context, hash string) (string, error) {
	return "", nil
}

func (Disabled) Enabled() bool {
	return false
}

// RPCClient submits vote hashes to the voting contract through a JSON-RPC
// endpoint.
type RPCClient struct {
	url      string
	contract string
	key      string
	timeout  time.Duration
	http     *http.Client
	log      *log.Logger
}

// NewRPCClient creates a ledger client for the given RPC endpoint
func NewRPCClient(url, contract, key string, timeout time.Duration) *RPCClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RPCClient{
		url:      url,
		contract: contract,
		key:      key,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
		log:      logger.Ledger(),
	}
}

func (c *RPCClient) Enabled() bool {
	return true
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Submit sends the vote hash to the voting contract and waits for the
// transaction reference. Any transport or contract failure is surfaced as an
// ExternalServiceError so the caller never records an unattested vote.
func (c *RPCClient) Submit(ctx context.Context, hash string) (string, error) {
	c.log.Debug("submitting vote hash to ledger", "hash", hash, "contract", c.contract)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "evote_castVote",
		Params:  []any{c.contract, hash},
		ID:      1,
	})
	if err != nil {
		return "", apperror.ExternalService("ledger submission failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", apperror.ExternalService("ledger submission failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("ledger request failed", "error", err)
		return "", apperror.ExternalService("ledger submission failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("ledger returned unexpected status", "status", resp.StatusCode)
		return "", apperror.ExternalService("ledger submission failed", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperror.ExternalService("ledger submission failed", err)
	}
	if out.Error != nil {
		c.log.Error("ledger rejected transaction", "code", out.Error.Code, "message", out.Error.Message)
		return "", apperror.ExternalService("ledger submission failed", fmt.Errorf("rpc error %d: %s", out.Error.Code, out.Error.Message))
	}
	if out.Result == "" {
		return "", apperror.ExternalService("ledger submission failed", fmt.Errorf("empty transaction reference"))
	}

	c.log.Info("vote hash confirmed on ledger", "tx", out.Result)
	return out.Result, nil
}
