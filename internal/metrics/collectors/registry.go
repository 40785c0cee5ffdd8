package collectors

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Source exposes ledger state without blocking on a running seal.
type Source interface {
	Height() int
	PendingCount() int
	Valid() bool
	HashesComputed() uint64
}

// CollectorFactory is a function type that creates a collector reading from src
type CollectorFactory func(src Source) (prometheus.Collector, error)

type Registry struct {
	factories []CollectorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make([]CollectorFactory, 0),
	}
}

func (r *Registry) Register(factory CollectorFactory) {
	r.factories = append(r.factories, factory)
}

// CreateCollectors instantiates all collectors for src
func (r *Registry) CreateCollectors(src Source) ([]prometheus.Collector, error) {
	if src == nil {
		return nil, errors.New("ledger source is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, factory := range r.factories {
		collector, err := factory(src)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

var DefaultRegistry = NewRegistry()

func RegisterCollectorFactory(factory CollectorFactory) {
	DefaultRegistry.Register(factory)
}
