package sql

import (
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Factory creates a collector that queries the export database.
type Factory func(db *sql.DB) (prometheus.Collector, error)

type Registry struct {
	factories []Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make([]Factory, 0),
	}
}

func (r *Registry) Register(factory Factory) {
	r.factories = append(r.factories, factory)
}

// CreateCollectors instantiates every registered collector against db.
func (r *Registry) CreateCollectors(db *sql.DB) ([]prometheus.Collector, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, factory := range r.factories {
		collector, err := factory(db)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

var DefaultRegistry = NewRegistry()

func RegisterCollectorFactory(factory Factory) {
	DefaultRegistry.Register(factory)
}
