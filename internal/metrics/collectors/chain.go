package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChainCollector reports the chain height and the outcome of the latest
// integrity check.
type ChainCollector struct {
	src    Source
	height *prometheus.Desc
	valid  *prometheus.Desc
}

func NewChainCollector(src Source) *ChainCollector {
	return &ChainCollector{
		src: src,
		height: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "chain", "height"),
			"Number of blocks in the chain, genesis included",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
		valid: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "chain", "valid"),
			"1 if the chain passed its latest integrity check, 0 otherwise",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *ChainCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
	ch <- c.valid
}

func (c *ChainCollector) Collect(ch chan<- prometheus.Metric) {
	valid := 0.0
	if c.src.Valid() {
		valid = 1
	}

	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(c.src.Height()))
	ch <- prometheus.MustNewConstMetric(c.valid, prometheus.GaugeValue, valid)
}

func init() {
	RegisterCollectorFactory(func(src Source) (prometheus.Collector, error) {
		return NewChainCollector(src), nil
	})
}
