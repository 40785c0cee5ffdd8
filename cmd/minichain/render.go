package minichain

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/liftedinit/minichain/internal/block"
)

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64)
}

func transactionTable(txs []block.Transaction) (string, error) {
	data := pterm.TableData{{"#", "Sender", "Receiver", "Amount"}}
	for i, tx := range txs {
		data = append(data, []string{strconv.Itoa(i), tx.Sender, tx.Receiver, formatAmount(tx.Amount)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func renderBlock(position int, b block.Block) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Index: %d\n", b.Index)
	fmt.Fprintf(&sb, "Timestamp: %d\n", b.Timestamp)
	fmt.Fprintf(&sb, "Previous Hash: %s\n", b.PreviousHash)
	fmt.Fprintf(&sb, "Hash: %s\n", b.Hash)
	fmt.Fprintf(&sb, "Nonce: %d\n", b.Nonce)
	if len(b.Transactions) == 0 {
		sb.WriteString("Transactions: none")
	} else {
		table, err := transactionTable(b.Transactions)
		if err != nil {
			return "", err
		}
		sb.WriteString("Transactions:\n")
		sb.WriteString(strings.TrimRight(table, "\n"))
	}
	return pterm.DefaultBox.WithTitle(fmt.Sprintf("Block #%d", position)).Sprint(sb.String()), nil
}

// renderChain writes the validity verdict followed by every block.
func renderChain(w io.Writer, blocks []block.Block, verifyErr error) error {
	verdict := pterm.Green("yes")
	if verifyErr != nil {
		verdict = pterm.Red("no (" + verifyErr.Error() + ")")
	}
	fmt.Fprintf(w, "Is blockchain valid? %s\n", verdict)

	for i, b := range blocks {
		s, err := renderBlock(i, b)
		if err != nil {
			return fmt.Errorf("failed to render block %d: %w", i, err)
		}
		fmt.Fprintln(w, s)
	}
	return nil
}

func renderPending(w io.Writer, txs []block.Transaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No pending transactions")
		return nil
	}
	table, err := transactionTable(txs)
	if err != nil {
		return fmt.Errorf("failed to render pending transactions: %w", err)
	}
	fmt.Fprintf(w, "%d pending transaction(s):\n%s\n", len(txs), strings.TrimRight(table, "\n"))
	return nil
}
