package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"okinoko_rewards/sdk"
)

// Badger persists state in badger. Update holds a store wide lock so calls execute one at a
// time, the same way the chain runs contract calls.
type Badger struct {
	promRegistry prometheus.Registerer
	db           *badger.DB
	logger       *slog.Logger
	dataDir      string
	mu           sync.Mutex
	metrics      *badgerMetrics
}

type badgerMetrics struct {
	txns *prometheus.CounterVec
}

// NewBadger opens the database
func NewBadger(opts ...BadgerOptionFunc) (*Badger, error) {
	s := &Badger{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		// Create logger to throw away logs
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var badgerOpts badger.Options
	if s.dataDir == "" {
		badgerOpts = badger.DefaultOptions("").
			WithInMemory(true)
	} else {
		if _, err := os.Stat(s.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		badgerOpts = badger.DefaultOptions(s.dataDir)
	}
	badgerOpts = badgerOpts.
		WithLogger(NewBadgerLogger(s.logger)).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	s.db = db
	if s.promRegistry != nil {
		s.metrics = &badgerMetrics{
			txns: promauto.With(s.promRegistry).NewCounterVec(
				prometheus.CounterOpts{
					Name: "rewardpool_store_txns_total",
					Help: "state transactions by mode and result",
				},
				[]string{"mode", "result"},
			),
		}
	}
	s.logger.Debug(
		"opened state store",
		"component", "store",
		"data_dir", s.dataDir,
	)
	return s, nil
}

func (s *Badger) Update(fn func(sdk.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerState{txn: txn, writable: true})
	})
	s.observe("update", err)
	return err
}

func (s *Badger) View(fn func(sdk.State) error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		return fn(&badgerState{txn: txn})
	})
	s.observe("view", err)
	return err
}

// Close closes the database handle
func (s *Badger) Close() error {
	return s.db.Close()
}

func (s *Badger) observe(mode string, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.txns.WithLabelValues(mode, result).Inc()
}

type badgerState struct {
	txn      *badger.Txn
	writable bool
}

func (b *badgerState) Get(key string) (*string, error) {
	item, err := b.txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	s := string(val)
	return &s, nil
}

func (b *badgerState) Set(key, value string) error {
	if !b.writable {
		return sdk.ErrReadOnly
	}
	return b.txn.Set([]byte(key), []byte(value))
}

func (b *badgerState) Delete(key string) error {
	if !b.writable {
		return sdk.ErrReadOnly
	}
	return b.txn.Delete([]byte(key))
}
