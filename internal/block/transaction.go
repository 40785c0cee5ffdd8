package block

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Transaction moves Amount from Sender to Receiver. Business rules such as a
// non-negative amount are not enforced here.
type Transaction struct {
	Sender   string  `json:"sender"`
	Receiver string  `json:"receiver"`
	Amount   float64 `json:"amount"`
}

// NewTransaction builds a transaction. Invalid UTF-8 in sender or receiver is
// replaced by U+FFFD, the form the identifiers take after a JSON round trip.
func NewTransaction(sender, receiver string, amount float64) Transaction {
	return Transaction{Sender: validUTF8(sender), Receiver: validUTF8(receiver), Amount: amount}
}

func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// EncodeTransactions returns the canonical form of txs that feeds the block
// digest: a JSON array of {"sender","receiver","amount"} objects in the given
// order. Amounts use the shortest decimal that round-trips, so the encoding
// never fails, even for values JSON cannot represent.
func EncodeTransactions(txs []Transaction) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, tx := range txs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"sender":`)
		writeString(&buf, tx.Sender)
		buf.WriteString(`,"receiver":`)
		writeString(&buf, tx.Receiver)
		buf.WriteString(`,"amount":`)
		buf.WriteString(strconv.FormatFloat(tx.Amount, 'g', -1, 64))
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.String()
}

func writeString(buf *bytes.Buffer, s string) {
	// Marshalling a string cannot fail. Replacing invalid bytes first keeps
	// the digest equal to that of the decoded string.
	b, _ := json.Marshal(validUTF8(s))
	buf.Write(b)
}

func cloneTransactions(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out
}
