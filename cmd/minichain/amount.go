package minichain

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/liftedinit/minichain/internal/block"
)

var errInvalidAmount = errors.New("invalid amount")

// parseAmount accepts any finite decimal, negative values included.
func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", errInvalidAmount, s)
	}
	return amount, nil
}

func parseTransaction(sender, receiver, amount string) (block.Transaction, error) {
	a, err := parseAmount(amount)
	if err != nil {
		return block.Transaction{}, err
	}
	return block.NewTransaction(sender, receiver, a), nil
}
