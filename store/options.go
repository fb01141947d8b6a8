package store

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type BadgerOptionFunc func(*Badger)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) BadgerOptionFunc {
	return func(b *Badger) {
		b.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) BadgerOptionFunc {
	return func(b *Badger) {
		b.promRegistry = registry
	}
}

// WithDataDir specifies the data directory to use for storage.
// An empty dir keeps everything in memory.
func WithDataDir(dataDir string) BadgerOptionFunc {
	return func(b *Badger) {
		b.dataDir = dataDir
	}
}
