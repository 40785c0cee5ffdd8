package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// CountCollector exposes the single integer returned by query.
type CountCollector struct {
	db        *sql.DB
	query     string
	valueType prometheus.ValueType
	desc      *prometheus.Desc
}

func newCountCollector(db *sql.DB, query string, valueType prometheus.ValueType, subsystem, name, help string) *CountCollector {
	return &CountCollector{
		db:        db,
		query:     query,
		valueType: valueType,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", subsystem, name),
			help,
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *CountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *CountCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	if err := c.db.QueryRow(c.query).Scan(&count); err != nil {
		ch <- prometheus.NewInvalidMetric(c.desc, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.desc, c.valueType, float64(count))
}
