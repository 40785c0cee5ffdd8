package block_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/minichain/internal/block"
)

func TestMeetsDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		hash       string
		difficulty uint
		want       bool
	}{
		{"zero difficulty always met", "ffff", 0, true},
		{"empty hash zero difficulty", "", 0, true},
		{"two leading zeros", "00ab", 2, true},
		{"more zeros than needed", "000a", 2, true},
		{"one zero short", "0abc", 2, false},
		{"zero not leading", "a00b", 2, false},
		{"difficulty longer than hash", "00", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, block.MeetsDifficulty(tt.hash, tt.difficulty))
		})
	}
}

func TestMineZeroDifficultyKeepsFirstHash(t *testing.T) {
	b := block.NewAt(0, 1700000000, aliceToBob(), "0")
	hash := b.Hash

	attempts := b.Mine(0)

	assert.Equal(t, uint64(1), attempts)
	assert.Equal(t, uint64(0), b.Nonce)
	assert.Equal(t, hash, b.Hash)
}

func TestMinePostcondition(t *testing.T) {
	for d := uint(0); d <= 3; d++ {
		b := block.NewAt(1, 1700000000, aliceToBob(), "0")
		attempts := b.Mine(d)

		require.True(t, strings.HasPrefix(b.Hash, strings.Repeat("0", int(d))), "difficulty %d hash %s", d, b.Hash)
		assert.True(t, b.Verify())
		assert.Equal(t, b.Nonce+1, attempts)
	}
}

func TestMineFindsSmallestNonce(t *testing.T) {
	b := block.NewAt(1, 1700000000, aliceToBob(), "0")
	b.Mine(2)

	candidate := block.NewAt(1, 1700000000, aliceToBob(), "0")
	for n := uint64(0); n < b.Nonce; n++ {
		candidate.Nonce = n
		assert.False(t, block.MeetsDifficulty(candidate.CalculateHash(), 2), "nonce %d satisfies difficulty", n)
	}
}

func TestNewMined(t *testing.T) {
	b := block.NewMined(4, 1700000000, aliceToBob(), "prev", 2)

	assert.Equal(t, uint64(4), b.Index)
	assert.Equal(t, "prev", b.PreviousHash)
	assert.True(t, strings.HasPrefix(b.Hash, "00"))
	assert.True(t, b.Verify())
}

func TestMineNotifyReportsEveryHash(t *testing.T) {
	b := block.NewAt(1, 1700000000, aliceToBob(), "0")

	var reported uint64
	calls := 0
	attempts := b.MineNotify(2, 16, func(hashes uint64) {
		assert.LessOrEqual(t, hashes, uint64(16))
		reported += hashes
		calls++
	})

	assert.Equal(t, attempts, reported)
	assert.Positive(t, calls)
}

func TestMineNotifyDisabled(t *testing.T) {
	b := block.NewAt(1, 1700000000, aliceToBob(), "0")
	called := false
	b.MineNotify(1, 0, func(uint64) { called = true })
	assert.False(t, called)
}
