package minichain_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/ledger"
)

func loadState(t *testing.T, state string) *ledger.Ledger {
	t.Helper()
	data, err := os.ReadFile(state)
	require.NoError(t, err)
	l, err := ledger.Decode(data)
	require.NoError(t, err)
	return l
}

// sealOne leaves a two block chain in state: genesis and one block holding a
// single Alice to Bob transfer of 50.
func sealOne(t *testing.T, state string) {
	t.Helper()
	_, err := run(t, state, "add-transaction", "-s", "Alice", "-r", "Bob", "-a", "50")
	require.NoError(t, err)
	_, err = run(t, state, "mine")
	require.NoError(t, err)
}

func TestAddTransactionAndMine(t *testing.T) {
	state := statePath(t)

	out, err := run(t, state, "add-transaction", "-s", "Alice", "-r", "Bob", "-a", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction added!")

	l := loadState(t, state)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, []block.Transaction{{Sender: "Alice", Receiver: "Bob", Amount: 50}}, l.Pending())

	out, err = run(t, state, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "1 pending transaction(s)")
	assert.Contains(t, out, "Alice")

	out, err = run(t, state, "mine")
	require.NoError(t, err)
	assert.Contains(t, out, "Block #1 mined! (1 transactions")

	l = loadState(t, state)
	require.Equal(t, 2, l.Len())
	assert.Zero(t, l.PendingLen())
	tip := l.Tip()
	assert.True(t, strings.HasPrefix(tip.Hash, "0"))
	assert.Equal(t, l.Inspect()[0].Hash, tip.PreviousHash)
	assert.True(t, l.IsValid())

	out, err = run(t, state, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending transactions")
}

func TestAddTransactionAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		valid  bool
	}{
		{"integer", "50", true},
		{"fraction", "0.25", true},
		{"negative", "-3", true},
		{"not a number", "abc", false},
		{"NaN", "NaN", false},
		{"infinity", "+Inf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := statePath(t)
			_, err := run(t, state, "add-transaction", "-s", "Alice", "-r", "Bob", "-a", tt.amount)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, 1, loadState(t, state).PendingLen())
				return
			}
			assert.ErrorContains(t, err, "invalid amount")
			assert.NoFileExists(t, state)
		})
	}
}

func TestAddTransactionRequiresFlags(t *testing.T) {
	_, err := run(t, statePath(t), "add-transaction", "-s", "Alice")
	assert.ErrorContains(t, err, "required flag(s)")
}

func TestMineEmptyPool(t *testing.T) {
	state := statePath(t)

	out, err := run(t, state, "mine")
	require.NoError(t, err)
	assert.Contains(t, out, "Block #1 mined! (0 transactions")

	l := loadState(t, state)
	assert.Equal(t, 2, l.Len())
	assert.Empty(t, l.Tip().Transactions)
}

func TestShowAndValidate(t *testing.T) {
	state := statePath(t)
	sealOne(t, state)

	out, err := run(t, state, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Is blockchain valid? yes")
	assert.Contains(t, out, "Block #0")
	assert.Contains(t, out, "Block #1")
	assert.Contains(t, out, "Previous Hash: "+block.GenesisPreviousHash)
	assert.Contains(t, out, "Bob")

	out, err = run(t, state, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Chain is valid (2 blocks)")
}

func tamper(t *testing.T, state string) {
	t.Helper()
	l := loadState(t, state)
	require.NoError(t, l.Tamper(1, func(b *block.Block) { b.Transactions[0].Amount = 500 }))
	data, err := ledger.Encode(l)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(state, data, 0644))
}

func TestValidateTamperedChain(t *testing.T) {
	state := statePath(t)
	sealOne(t, state)
	tamper(t, state)

	_, err := run(t, state, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrIntegrity)
	assert.ErrorContains(t, err, "chain is invalid: block 1")

	out, err := run(t, state, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Is blockchain valid? no")
	assert.Contains(t, out, "500")
}

func TestCorruptStateStartsFresh(t *testing.T) {
	state := statePath(t)
	require.NoError(t, os.WriteFile(state, []byte("{not json"), 0644))

	out, err := run(t, state, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Chain is valid (1 blocks)")
}

func TestExportCmd(t *testing.T) {
	// Show help
	output, err := run(t, statePath(t), "export")
	assert.NoError(t, err)
	assert.Contains(t, output, "Export every block of a valid chain")
}

func TestExportJSON(t *testing.T) {
	state := statePath(t)
	outDir := t.TempDir()
	sealOne(t, state)

	_, err := run(t, state, "export", "json", "-o", outDir)
	require.NoError(t, err)

	want := loadState(t, state).Inspect()
	for _, b := range want {
		data, err := os.ReadFile(filepath.Join(outDir, "block", blockFileName(b.Index)))
		require.NoError(t, err)

		var got block.Block
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, b, got)
	}
}

func blockFileName(index uint64) string {
	return fmt.Sprintf("block_%010d.json", index)
}

func TestExportTSV(t *testing.T) {
	state := statePath(t)
	outDir := t.TempDir()
	sealOne(t, state)

	_, err := run(t, state, "export", "tsv", "-o", outDir, "-c", "1")
	require.NoError(t, err)

	blocks, err := os.ReadFile(filepath.Join(outDir, "blocks.tsv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(blocks)), "\n"), 2)

	txs, err := os.ReadFile(filepath.Join(outDir, "transactions.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "1\t0\tAlice\tBob\t50\n", string(txs))
}

func TestExportRefusesInvalidChain(t *testing.T) {
	state := statePath(t)
	outDir := filepath.Join(t.TempDir(), "out")
	sealOne(t, state)
	tamper(t, state)

	_, err := run(t, state, "export", "json", "-o", outDir)
	assert.ErrorContains(t, err, "refusing to export an invalid chain")
	assert.ErrorIs(t, err, ledger.ErrIntegrity)
	assert.NoDirExists(t, outDir)
}

func TestExportPostgresRequiresConnString(t *testing.T) {
	_, err := run(t, statePath(t), "export", "postgres")
	assert.ErrorContains(t, err, "missing PostgreSQL connection string")
}
