package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

type PendingTransactionsCollector struct {
	src     Source
	pending *prometheus.Desc
}

func NewPendingTransactionsCollector(src Source) *PendingTransactionsCollector {
	return &PendingTransactionsCollector{
		src: src,
		pending: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "transactions", "pending"),
			"Transactions waiting to be sealed",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *PendingTransactionsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
}

func (c *PendingTransactionsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(c.src.PendingCount()))
}

func init() {
	RegisterCollectorFactory(func(src Source) (prometheus.Collector, error) {
		return NewPendingTransactionsCollector(src), nil
	})
}
