package metrics

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liftedinit/minichain/internal/metrics/collectors"
	sqlcollectors "github.com/liftedinit/minichain/internal/metrics/collectors/sql"
)

// CreateMetricsServer serves /metrics on addr for src. When db is not nil the
// export database collectors are included. The listener is bound before
// returning, so address errors surface here.
func CreateMetricsServer(src collectors.Source, db *sql.DB, addr string) (*http.Server, error) {
	registry := prometheus.NewRegistry()

	cs, err := collectors.DefaultRegistry.CreateCollectors(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger collectors: %w", err)
	}
	if db != nil {
		sqlCs, err := sqlcollectors.DefaultRegistry.CreateCollectors(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQL collectors: %w", err)
		}
		cs = append(cs, sqlCs...)
	}

	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting Prometheus metrics server", "addr", server.Addr)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start metrics server", "error", err)
		}
	}()

	return server, nil
}
