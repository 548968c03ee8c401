package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/config"
)

func TestVoteHashDeterministic(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()
	candidateID := uuid.New()

	first := VoteHash(userID, eventID, candidateID)
	second := VoteHash(userID, eventID, candidateID)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestVoteHashDistinctPerInput(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()
	candidateID := uuid.New()

	base := VoteHash(userID, eventID, candidateID)

	assert.NotEqual(t, base, VoteHash(uuid.New(), eventID, candidateID))
	assert.NotEqual(t, base, VoteHash(userID, uuid.New(), candidateID))
	assert.NotEqual(t, base, VoteHash(userID, eventID, uuid.New()))
}

func TestFromConfigDisabled(t *testing.T) {
	client := FromConfig(&config.Config{})

	assert.False(t, client.Enabled())

	txRef, err := client.Submit(context.Background(), "abc")
	assert.NoError(t, err)
	assert.Empty(t, txRef)
}

func TestFromConfigEnabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Ledger.RPCURL = "http://localhost:8545"
	cfg.Ledger.ContractAddress = "0xabc"

	client := FromConfig(cfg)
	assert.True(t, client.Enabled())
}

func TestRPCClientSubmit(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(rpcResponse{Result: "0xfeed"})
	}))
	defer server.Close()

	client := NewRPCClient(server.URL, "0xcontract", "secret", time.Second)

	txRef, err := client.Submit(context.Background(), "somehash")
	require.NoError(t, err)

	assert.Equal(t, "0xfeed", txRef)
	assert.Equal(t, "evote_castVote", captured.Method)
	require.Len(t, captured.Params, 2)
	assert.Equal(t, "0xcontract", captured.Params[0])
	assert.Equal(t, "somehash", captured.Params[1])
}

func TestRPCClientSubmitRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":-32000,"message":"reverted"}}`))
	}))
	defer server.Close()

	client := NewRPCClient(server.URL, "0xcontract", "", time.Second)

	_, err := client.Submit(context.Background(), "somehash")
	assert.ErrorIs(t, err, apperror.ErrExternalService)
	assert.Contains(t, err.Error(), "reverted")
}

func TestRPCClientSubmitBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRPCClient(server.URL, "0xcontract", "", time.Second)

	_, err := client.Submit(context.Background(), "somehash")
	assert.ErrorIs(t, err, apperror.ErrExternalService)
}

func TestRPCClientSubmitTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewRPCClient(server.URL, "0xcontract", "", 20*time.Millisecond)

	_, err := client.Submit(context.Background(), "somehash")
	assert.ErrorIs(t, err, apperror.ErrExternalService)
}

func TestRPCClientSubmitEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":""}`))
	}))
	defer server.Close()

	client := NewRPCClient(server.URL, "0xcontract", "", time.Second)

	_, err := client.Submit(context.Background(), "somehash")
	assert.ErrorIs(t, err, apperror.ErrExternalService)
}
