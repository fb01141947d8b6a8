package contract

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"okinoko_rewards/sdk"
)

type RewardPoolOptionFunc func(*RewardPool)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) RewardPoolOptionFunc {
	return func(p *RewardPool) {
		p.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) RewardPoolOptionFunc {
	return func(p *RewardPool) {
		p.promRegistry = registry
	}
}

// WithAddress sets the account the pool holds tokens under and binds relayed signatures to.
func WithAddress(addr sdk.Address) RewardPoolOptionFunc {
	return func(p *RewardPool) {
		p.self = addr
	}
}

// WithEventHandler receives every event line after its call committed.
func WithEventHandler(fn func(event string)) RewardPoolOptionFunc {
	return func(p *RewardPool) {
		p.onEvent = fn
	}
}
