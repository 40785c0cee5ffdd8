package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/ledger"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(1), ledger.WithClock(fixedClock()))
	l.Submit("Alice", "Bob", 50)
	l.Seal(2)
	l.Submit("Bob", "Carol", 0.1)

	data, err := ledger.Encode(l)
	require.NoError(t, err)

	restored, err := ledger.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, l.Snapshot(), restored.Snapshot())
	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, 1, restored.PendingLen())
	assert.Equal(t, l.Tip().Hash, restored.Tip().Hash)
	assert.True(t, restored.IsValid())
}

func TestEncodeLayout(t *testing.T) {
	l := ledger.New(ledger.WithClock(fixedClock()))
	l.Submit("Alice", "Bob", 50)

	data, err := ledger.Encode(l)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "chain")
	require.Contains(t, raw, "pending_transactions")

	genesis := raw["chain"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"index", "timestamp", "transactions", "previous_hash", "hash", "nonce"} {
		assert.Contains(t, genesis, key)
	}
	assert.Equal(t, []interface{}{}, genesis["transactions"])

	pending := raw["pending_transactions"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"sender": "Alice", "receiver": "Bob", "amount": float64(50)}, pending)
}

func TestDecodeKeepsStoredHashes(t *testing.T) {
	l := ledger.New(ledger.WithClock(fixedClock()))
	l.Seal(0)
	require.NoError(t, l.Tamper(1, func(b *block.Block) { b.Hash = "not-a-real-hash" }))

	data, err := ledger.Encode(l)
	require.NoError(t, err)

	restored, err := ledger.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "not-a-real-hash", restored.Tip().Hash)
	assert.False(t, restored.IsValid())
}

func TestDecodeErrors(t *testing.T) {
	_, err := ledger.Decode([]byte("{not json"))
	assert.Error(t, err)

	_, err = ledger.Decode([]byte(`{"chain": [], "pending_transactions": []}`))
	assert.ErrorIs(t, err, ledger.ErrEmptyChain)
}

func TestRestoreCopiesState(t *testing.T) {
	s := ledger.New().Snapshot()
	l, err := ledger.Restore(s)
	require.NoError(t, err)

	s.Chain[0].Hash = "mutated"
	assert.True(t, l.IsValid())
}

func TestEncodeDecodeInvalidUTF8Identifiers(t *testing.T) {
	l := ledger.New(ledger.WithClock(fixedClock()))
	l.AddTransaction(block.Transaction{Sender: "Jos\xe9", Receiver: "\xc3\xa9\xff", Amount: 5})
	l.Seal(1)
	l.Submit("Bob", "Jos\xe9", 1)
	require.True(t, l.IsValid())

	data, err := ledger.Encode(l)
	require.NoError(t, err)

	restored, err := ledger.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, l.Snapshot(), restored.Snapshot())
	assert.Equal(t, "é�", restored.Tip().Transactions[0].Receiver)
	assert.NoError(t, restored.Verify())
}
