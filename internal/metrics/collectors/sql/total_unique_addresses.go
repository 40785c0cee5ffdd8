package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// TotalUniqueAddressesQuery counts identifiers seen as either sender or receiver.
const TotalUniqueAddressesQuery = `
	SELECT COUNT(*) FROM (
		SELECT sender AS address FROM api.transactions
		UNION
		SELECT receiver AS address FROM api.transactions
	) AS addresses`

func NewTotalUniqueAddressesCollector(db *sql.DB) *CountCollector {
	return newCountCollector(db, TotalUniqueAddressesQuery, prometheus.GaugeValue, "addresses", "total_unique", "Total unique sender and receiver identifiers")
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB) (prometheus.Collector, error) {
		return NewTotalUniqueAddressesCollector(db), nil
	})
}
