package block

import (
	"encoding/hex"
	"strconv"
	"time"

	sha256 "github.com/minio/sha256-simd"
)

// GenesisPreviousHash is the previous hash carried by the first block of a chain.
const GenesisPreviousHash = "0"

// Block is a batch of transactions bound to its predecessor by PreviousHash.
// Hash covers Timestamp, Transactions, PreviousHash and Nonce; Index is
// positional bookkeeping and is not part of the digest.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	PreviousHash string        `json:"previous_hash"`
	Hash         string        `json:"hash"`
	Nonce        uint64        `json:"nonce"`
}

// New creates a block stamped with the current time and hashed at nonce 0.
func New(index uint64, txs []Transaction, previousHash string) *Block {
	return NewAt(index, time.Now().Unix(), txs, previousHash)
}

// NewAt is New with a caller supplied timestamp (seconds since epoch).
func NewAt(index uint64, timestamp int64, txs []Transaction, previousHash string) *Block {
	b := &Block{
		Index:        index,
		Timestamp:    timestamp,
		Transactions: cloneTransactions(txs),
		PreviousHash: previousHash,
		Nonce:        0,
	}
	b.Hash = b.CalculateHash()
	return b
}

// NewMined creates a block and mines it at the given difficulty. Difficulty
// 0 returns the plain nonce-0 digest.
func NewMined(index uint64, timestamp int64, txs []Transaction, previousHash string, difficulty uint) *Block {
	b := NewAt(index, timestamp, txs, previousHash)
	b.Mine(difficulty)
	return b
}

// CalculateHash returns the lowercase hex SHA-256 of
// timestamp || transactions || previous hash || nonce.
func (b *Block) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatInt(b.Timestamp, 10)))
	h.Write([]byte(EncodeTransactions(b.Transactions)))
	h.Write([]byte(b.PreviousHash))
	h.Write([]byte(strconv.FormatUint(b.Nonce, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether the stored hash matches the block contents.
func (b *Block) Verify() bool {
	return b.Hash == b.CalculateHash()
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Transactions = cloneTransactions(b.Transactions)
	return b
}
