// Package ledger implements an append-only, proof-of-work gated chain of
// blocks together with the pool of transactions waiting to be sealed.
//
// # Core Components
//
// Ledger: the chain, never empty, starting at a genesis block with no
// transactions and previous hash "0", plus the pending pool.
//
// State: the persisted layout of a Ledger. Restoring a State keeps every
// stored hash as-is; integrity is only checked when Verify is called.
//
// # Concurrency
//
// A Ledger assumes a single writer and does no locking of its own. Readers
// that run alongside a writer must be serialised by the caller.
package ledger
