package output

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/liftedinit/minichain/internal/block"
)

type TSVOutputHandler struct {
	mu          sync.Mutex
	blockFile   *os.File
	txFile      *os.File
	blockWriter *bufio.Writer
	txWriter    *bufio.Writer
}

const (
	blocksTSV = "blocks.tsv"
	txsTSV    = "transactions.tsv"
)

// tsvEscaper keeps one record per line and one field per column, using the
// IANA text/tab-separated-values escapes.
var tsvEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	blockFile, err := os.Create(filepath.Join(outDir, blocksTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create blocks TSV file")
	}

	txFile, err := os.Create(filepath.Join(outDir, txsTSV))
	if err != nil {
		blockFile.Close()
		return nil, errors.WithMessage(err, "failed to create transactions TSV file")
	}

	return &TSVOutputHandler{
		blockFile:   blockFile,
		txFile:      txFile,
		blockWriter: bufio.NewWriter(blockFile),
		txWriter:    bufio.NewWriter(txFile),
	}, nil
}

// WriteBlock appends one line to blocks.tsv and one line per transaction to
// transactions.tsv. Rows follow write order, not chain order.
func (h *TSVOutputHandler) WriteBlock(_ context.Context, b *block.Block) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := fmt.Sprintf("%d\t%d\t%s\t%s\t%d\n", b.Index, b.Timestamp, b.PreviousHash, b.Hash, b.Nonce)
	if _, err := h.blockWriter.WriteString(line); err != nil {
		return errors.WithMessage(err, "failed to write block row")
	}

	for i, tx := range b.Transactions {
		line := fmt.Sprintf("%d\t%d\t%s\t%s\t%s\n", b.Index, i, tsvEscaper.Replace(tx.Sender), tsvEscaper.Replace(tx.Receiver), strconv.FormatFloat(tx.Amount, 'g', -1, 64))
		if _, err := h.txWriter.WriteString(line); err != nil {
			return errors.WithMessage(err, "failed to write transaction row")
		}
	}
	return nil
}

func (h *TSVOutputHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.blockWriter.Flush(); err != nil {
		slog.Error("failed to flush block writer", "errors", err)
		return err
	}
	if err := h.txWriter.Flush(); err != nil {
		slog.Error("failed to flush tx writer", "errors", err)
		return err
	}
	if err := h.blockFile.Close(); err != nil {
		slog.Error("failed to close block file", "errors", err)
		return err
	}
	if err := h.txFile.Close(); err != nil {
		slog.Error("failed to close tx file", "errors", err)
		return err
	}
	return nil
}
