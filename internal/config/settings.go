package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/mcpscope/mcpscope/internal/errors"
)

// Default values for the tool's own settings (.mcpscope.toml).
const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultPingTimeout    = 5 * time.Second
	DefaultHTTPTimeout    = 5 * time.Second
	DefaultCacheTTL       = 5 * time.Minute
	DefaultAPIAddr        = "0.0.0.0:8095"
)

// Duration wraps time.Duration for text-based (un)marshalling in TOML.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler for Duration.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Settings represents the .mcpscope.toml file: the tool's own configuration,
// distinct from the aggregated sources it operates on.
type Settings struct {
	// ManagedFile overrides the location of the administrator-managed source.
	ManagedFile string `toml:"managed_file,omitempty"`

	Probe ProbeSettings `toml:"probe"`
	Cache CacheSettings `toml:"cache"`
	API   APISettings   `toml:"api"`
}

// ProbeSettings contains timeout settings for health probes.
type ProbeSettings struct {
	// ConnectTimeout bounds the tier-2 connection and protocol handshake.
	ConnectTimeout Duration `toml:"connect_timeout"`

	// PingTimeout bounds the tier-2 liveness ping.
	PingTimeout Duration `toml:"ping_timeout"`

	// HTTPTimeout bounds the tier-1 endpoint reachability probe.
	HTTPTimeout Duration `toml:"http_timeout"`
}

// CacheSettings contains the health-result cache configuration.
type CacheSettings struct {
	// TTL is the expiry window for cached health results.
	TTL Duration `toml:"ttl"`
}

// APISettings contains configuration for the HTTP status API.
type APISettings struct {
	// Addr to bind the status API server (e.g. "0.0.0.0:8095").
	Addr string `toml:"addr,omitempty"`

	CORS CORSSettings `toml:"cors"`
}

// CORSSettings contains Cross-Origin Resource Sharing configuration for the status API.
type CORSSettings struct {
	Enable  bool     `toml:"enable,omitempty"`
	Origins []string `toml:"allow_origins,omitempty"`
	Methods []string `toml:"allow_methods,omitempty"`
	Headers []string `toml:"allow_headers,omitempty"`
}

// DefaultSettings returns a Settings with every value at its default.
func DefaultSettings() *Settings {
	return &Settings{
		Probe: ProbeSettings{
			ConnectTimeout: Duration(DefaultConnectTimeout),
			PingTimeout:    Duration(DefaultPingTimeout),
			HTTPTimeout:    Duration(DefaultHTTPTimeout),
		},
		Cache: CacheSettings{
			TTL: Duration(DefaultCacheTTL),
		},
		API: APISettings{
			Addr: DefaultAPIAddr,
		},
	}
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults; a present but unparsable file is an explicit error, since silently
// ignoring a misconfigured timeout would be surprising.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	path = strings.TrimSpace(path)
	if path == "" {
		return settings, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w: failed to stat settings file (%s): %w", apperrors.ErrSettingsLoadFailed, path, err)
	}

	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("%w: failed to decode settings file (%s): %w", apperrors.ErrSettingsLoadFailed, path, err)
	}

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid settings (%s): %w", apperrors.ErrSettingsLoadFailed, path, err)
	}

	return settings, nil
}

func (s *Settings) validate() error {
	var validationErrors []error

	if time.Duration(s.Probe.ConnectTimeout) <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("probe.connect_timeout must be positive"))
	}
	if time.Duration(s.Probe.PingTimeout) <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("probe.ping_timeout must be positive"))
	}
	if time.Duration(s.Probe.HTTPTimeout) <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("probe.http_timeout must be positive"))
	}
	if time.Duration(s.Cache.TTL) <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("cache.ttl must be positive"))
	}

	return errors.Join(validationErrors...)
}
