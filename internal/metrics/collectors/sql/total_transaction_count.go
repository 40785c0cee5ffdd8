package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const TotalTransactionCountQuery = `SELECT COUNT(*) FROM api.transactions`

func NewTotalTransactionCountCollector(db *sql.DB) *CountCollector {
	return newCountCollector(db, TotalTransactionCountQuery, prometheus.CounterValue, "exported_transactions", "total_count", "Total exported transaction count")
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB) (prometheus.Collector, error) {
		return NewTotalTransactionCountCollector(db), nil
	})
}
