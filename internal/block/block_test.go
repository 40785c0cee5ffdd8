package block_test

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/minichain/internal/block"
)

func aliceToBob() []block.Transaction {
	return []block.Transaction{block.NewTransaction("Alice", "Bob", 50)}
}

func TestNewBlock(t *testing.T) {
	txs := aliceToBob()
	b := block.New(0, txs, block.GenesisPreviousHash)

	assert.Equal(t, txs, b.Transactions)
	assert.Equal(t, block.GenesisPreviousHash, b.PreviousHash)
	assert.NotEmpty(t, b.Hash)
	assert.Len(t, b.Hash, 64)
	assert.Equal(t, uint64(0), b.Nonce)
	assert.NotZero(t, b.Timestamp)
	assert.Equal(t, b.CalculateHash(), b.Hash)
}

func TestNewBlockCopiesTransactions(t *testing.T) {
	txs := aliceToBob()
	b := block.NewAt(0, 1700000000, txs, "0")
	txs[0].Amount = 1

	assert.Equal(t, float64(50), b.Transactions[0].Amount)
	assert.True(t, b.Verify())
}

func TestCalculateHashMatchesDigestLayout(t *testing.T) {
	b := block.NewAt(3, 1700000000, aliceToBob(), "abc")

	payload := `1700000000[{"sender":"Alice","receiver":"Bob","amount":50}]abc0`
	sum := sha256.Sum256([]byte(payload))
	assert.Equal(t, hex.EncodeToString(sum[:]), b.Hash)
}

func TestCalculateHashIsDeterministic(t *testing.T) {
	b := block.NewAt(0, 1700000000, aliceToBob(), "0")
	first := b.CalculateHash()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, b.CalculateHash())
	}
}

func TestCalculateHashSensitivity(t *testing.T) {
	base := block.NewAt(0, 1700000000, []block.Transaction{
		block.NewTransaction("Alice", "Bob", 50),
		block.NewTransaction("Bob", "Carol", 7.5),
	}, "0")

	tests := []struct {
		name   string
		mutate func(b *block.Block)
	}{
		{"timestamp", func(b *block.Block) { b.Timestamp++ }},
		{"nonce", func(b *block.Block) { b.Nonce++ }},
		{"previous hash", func(b *block.Block) { b.PreviousHash = "1" }},
		{"amount", func(b *block.Block) { b.Transactions[0].Amount = 51 }},
		{"sender", func(b *block.Block) { b.Transactions[1].Sender = "Dave" }},
		{"order", func(b *block.Block) {
			b.Transactions[0], b.Transactions[1] = b.Transactions[1], b.Transactions[0]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base.Clone()
			tt.mutate(&b)
			assert.NotEqual(t, base.Hash, b.CalculateHash())
			assert.False(t, b.Verify())
		})
	}
}

func TestIndexIsNotHashed(t *testing.T) {
	a := block.NewAt(0, 1700000000, aliceToBob(), "0")
	b := block.NewAt(9, 1700000000, aliceToBob(), "0")
	assert.Equal(t, a.Hash, b.Hash)
}

func TestEncodeTransactions(t *testing.T) {
	assert.Equal(t, "[]", block.EncodeTransactions(nil))
	assert.Equal(t, "[]", block.EncodeTransactions([]block.Transaction{}))
	assert.Equal(t,
		`[{"sender":"A \"q\"","receiver":"B","amount":-0.25},{"sender":"C","receiver":"D","amount":1e+21}]`,
		block.EncodeTransactions([]block.Transaction{
			block.NewTransaction(`A "q"`, "B", -0.25),
			block.NewTransaction("C", "D", 1e21),
		}))
	// Non-finite amounts still produce a digest input.
	assert.Contains(t, block.EncodeTransactions([]block.Transaction{block.NewTransaction("a", "b", math.Inf(1))}), "+Inf")
}

func TestCloneIsDeep(t *testing.T) {
	b := block.NewAt(0, 1700000000, aliceToBob(), "0")
	c := b.Clone()
	c.Transactions[0].Sender = "Mallory"

	require.Equal(t, "Alice", b.Transactions[0].Sender)
	assert.True(t, b.Verify())
}

func TestNewTransactionReplacesInvalidUTF8(t *testing.T) {
	tx := block.NewTransaction("Jos\xe9", "Bob\xff", 5)

	assert.Equal(t, "Jos�", tx.Sender)
	assert.Equal(t, "Bob�", tx.Receiver)
}

func TestEncodeTransactionsInvalidUTF8MatchesDecodedForm(t *testing.T) {
	raw := []block.Transaction{{Sender: "Jos\xe9", Receiver: "Bob", Amount: 5}}
	decoded := []block.Transaction{{Sender: "Jos�", Receiver: "Bob", Amount: 5}}

	assert.Equal(t, block.EncodeTransactions(decoded), block.EncodeTransactions(raw))
	assert.Equal(t,
		block.NewAt(1, 1700000000, decoded, "0").Hash,
		block.NewAt(1, 1700000000, raw, "0").Hash,
	)
}
