package health

import (
	"fmt"
	"time"
)

// DefaultConcurrency bounds how many probes a batch dispatches at once.
const DefaultConcurrency = 8

// Option defines a functional option for configuring the Engine.
type Option func(*Options) error

// Options contains optional configuration for the Engine.
type Options struct {
	// ConnectTimeout bounds tier-2 connect and handshake.
	ConnectTimeout time.Duration

	// PingTimeout bounds the tier-2 liveness ping and tool enumeration.
	PingTimeout time.Duration

	// HTTPTimeout bounds the tier-1 endpoint probe.
	HTTPTimeout time.Duration

	// CacheTTL is the expiry window for cached results.
	CacheTTL time.Duration

	// Concurrency bounds batch probe parallelism.
	Concurrency int
}

// NewOptions applies the supplied options on top of defaults.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		ConnectTimeout: 15 * time.Second,
		PingTimeout:    5 * time.Second,
		HTTPTimeout:    5 * time.Second,
		CacheTTL:       5 * time.Minute,
		Concurrency:    DefaultConcurrency,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithConnectTimeout sets the tier-2 connect timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("connect timeout must be positive, got %s", d)
		}
		o.ConnectTimeout = d
		return nil
	}
}

// WithPingTimeout sets the tier-2 ping timeout.
func WithPingTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("ping timeout must be positive, got %s", d)
		}
		o.PingTimeout = d
		return nil
	}
}

// WithHTTPTimeout sets the tier-1 endpoint probe timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be positive, got %s", d)
		}
		o.HTTPTimeout = d
		return nil
	}
}

// WithCacheTTL sets the result cache expiry window.
func WithCacheTTL(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("cache TTL must be positive, got %s", d)
		}
		o.CacheTTL = d
		return nil
	}
}

// WithConcurrency bounds how many probes run at once in batch operations.
func WithConcurrency(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		o.Concurrency = n
		return nil
	}
}
