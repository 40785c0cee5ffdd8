package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MiningHashesCollector counts hashes evaluated by proof-of-work since the
// process started. It keeps increasing while a block is being mined.
type MiningHashesCollector struct {
	src    Source
	hashes *prometheus.Desc
}

func NewMiningHashesCollector(src Source) *MiningHashesCollector {
	return &MiningHashesCollector{
		src: src,
		hashes: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "mining", "hashes_total"),
			"Hashes evaluated while mining",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *MiningHashesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hashes
}

func (c *MiningHashesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.hashes, prometheus.CounterValue, float64(c.src.HashesComputed()))
}

func init() {
	RegisterCollectorFactory(func(src Source) (prometheus.Collector, error) {
		return NewMiningHashesCollector(src), nil
	})
}
