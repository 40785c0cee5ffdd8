package minichain

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/minichain/internal/config"
	"github.com/liftedinit/minichain/internal/metrics"
	"github.com/liftedinit/minichain/internal/output/postgresql"
	"github.com/liftedinit/minichain/internal/session"
)

const interactiveUsage = `Commands:
  add-transaction <sender> <receiver> <amount>
  mine
  show
  pending
  validate
  help
  exit`

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive prompt",
	Long:  `Read commands from standard input until exit. This is the default when minichain runs without a subcommand.`,
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	interactiveCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	interactiveCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")
	interactiveCmd.Flags().String("postgres-conn", "", "Mirror sealed blocks to this PostgreSQL database")
	if err := viper.BindPFlags(interactiveCmd.Flags()); err != nil {
		slog.Error("Failed to bind interactiveCmd flags", "error", err)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	defer handleInterrupt(cancel)()

	metricsConfig := config.LoadMetricsConfigFromCLI()
	if err := metricsConfig.Validate(); err != nil {
		return fmt.Errorf("invalid metrics configuration: %w", err)
	}

	s := openSession()

	var db *sql.DB
	var m *mirror
	if postgresConfig := config.LoadPostgresConfigFromCLI(); postgresConfig.ConnString != "" {
		handler, err := startMirror(ctx, s, postgresConfig)
		if err != nil {
			return err
		}
		defer handler.Close()
		db = handler.DB()
		m = newMirror(s, handler, postgresConfig.MaxConcurrency)
		m.listen(ctx)
	}

	if metricsConfig.Enable {
		server, err := metrics.CreateMetricsServer(s, db, metricsConfig.Addr)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer server.Close()
	}

	p := &prompt{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), status: cmd.ErrOrStderr(), session: s, mirror: m}
	return p.run(ctx)
}

// startMirror connects to the database and brings it up to date.
func startMirror(ctx context.Context, s *session.Session, cfg config.PostgresConfig) (*postgresql.PostgresOutputHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL configuration: %w", err)
	}

	handler, err := postgresql.NewPostgresOutputHandler(ctx, cfg.ConnString, cfg.MaxConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL output handler: %w", err)
	}

	if err := newMirror(s, handler, cfg.MaxConcurrency).sync(ctx); err != nil {
		handler.Close()
		return nil, err
	}
	return handler, nil
}

type prompt struct {
	in      io.Reader
	out     io.Writer
	status  io.Writer
	session *session.Session
	mirror  *mirror
}

func (p *prompt) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(p.out, interactiveUsage)
	for {
		fmt.Fprint(p.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(p.out)
				return nil
			}
			line = l
		}

		quit, err := p.handle(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handle runs one prompt line. Input mistakes are reported on out and never
// end the loop.
func (p *prompt) handle(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "add-transaction":
		if len(fields) != 4 {
			fmt.Fprintln(p.out, "usage: add-transaction <sender> <receiver> <amount>")
			return false, nil
		}
		tx, err := parseTransaction(fields[1], fields[2], fields[3])
		if err != nil {
			fmt.Fprintln(p.out, err)
			return false, nil
		}
		if err := p.session.AddTransaction(tx); err != nil {
			return false, fmt.Errorf("failed to save transaction: %w", err)
		}
		fmt.Fprintln(p.out, "Transaction added!")
	case "mine":
		b, err := sealWithProgress(ctx, p.session, p.status)
		if errors.Is(err, context.Canceled) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to mine block: %w", err)
		}
		fmt.Fprintf(p.out, "Block #%d mined! (%d transactions, nonce %d, hash %s)\n", b.Index, len(b.Transactions), b.Nonce, b.Hash)
		if p.mirror != nil {
			if err := p.mirror.takeErr(); err != nil {
				fmt.Fprintf(p.out, "warning: block #%d was not mirrored (%v); it will be retried after the next block\n", b.Index, err)
			}
		}
	case "show":
		if err := renderChain(p.out, p.session.Blocks(), p.session.Verify()); err != nil {
			return false, err
		}
	case "pending":
		if err := renderPending(p.out, p.session.Pending()); err != nil {
			return false, err
		}
	case "validate":
		if err := p.session.Verify(); err != nil {
			fmt.Fprintf(p.out, "Chain is invalid: %v\n", err)
		} else {
			fmt.Fprintf(p.out, "Chain is valid (%d blocks)\n", p.session.Height())
		}
	case "help":
		fmt.Fprintln(p.out, interactiveUsage)
	case "exit", "quit":
		return true, nil
	default:
		fmt.Fprintf(p.out, "invalid command: %s\n", fields[0])
	}
	return false, nil
}
