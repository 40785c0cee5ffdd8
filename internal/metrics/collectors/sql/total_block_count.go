package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const TotalBlockCountQuery = `SELECT COUNT(*) FROM api.blocks`

func NewTotalBlockCountCollector(db *sql.DB) *CountCollector {
	return newCountCollector(db, TotalBlockCountQuery, prometheus.CounterValue, "exported_blocks", "total_count", "Total exported block count")
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB) (prometheus.Collector, error) {
		return NewTotalBlockCountCollector(db), nil
	})
}
