package block

import "strings"

// MeetsDifficulty reports whether hash starts with difficulty '0' characters.
func MeetsDifficulty(hash string, difficulty uint) bool {
	if uint(len(hash)) < difficulty {
		return false
	}
	return strings.Count(hash[:difficulty], "0") == int(difficulty)
}

// Mine searches nonces upwards from the current one until the hash meets
// difficulty, and returns the number of hashes evaluated. It blocks until it
// succeeds: the expected cost is about 16^difficulty hashes and a difficulty
// above 64 never terminates, so bounding it is the caller's job.
func (b *Block) Mine(difficulty uint) uint64 {
	return b.MineNotify(difficulty, 0, nil)
}

// MineNotify is Mine with progress reporting. fn receives the number of
// hashes evaluated since its previous call, every `every` hashes and once more
// with the remainder when the search ends. A zero every or nil fn disables it.
func (b *Block) MineNotify(difficulty uint, every uint64, fn func(hashes uint64)) uint64 {
	if every == 0 {
		fn = nil
	}

	var attempts, unreported uint64
	for {
		attempts++
		unreported++
		if MeetsDifficulty(b.Hash, difficulty) {
			break
		}
		if fn != nil && unreported == every {
			fn(unreported)
			unreported = 0
		}
		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	if fn != nil && unreported > 0 {
		fn(unreported)
	}
	return attempts
}
