package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mcpscope/mcpscope/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(hclog.NewNullLogger())
	require.NoError(t, err)

	return engine
}

func TestEngine_CheckTier1_Disabled(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	entry := config.Entry{
		Name:      "parked",
		Scope:     config.ScopeUser,
		Enabled:   false,
		Transport: config.TransportConfig{Command: "definitely-not-installed"},
	}

	result := engine.CheckTier1(context.Background(), entry)
	require.Equal(t, StatusUnknown, result.Status)

	// Disabled entries never enter the cache.
	_, ok := engine.Cached(entry)
	require.False(t, ok)
}

func TestEngine_CheckTier1_Binary(t *testing.T) {
	t.Parallel()

	t.Run("resolvable command", func(t *testing.T) {
		t.Parallel()

		engine := newTestEngine(t)
		entry := config.Entry{
			Name:      "shell",
			Scope:     config.ScopeUser,
			Enabled:   true,
			Transport: config.TransportConfig{Command: "sh"},
		}

		result := engine.CheckTier1(context.Background(), entry)
		require.Equal(t, StatusBinaryFound, result.Status)
		require.Equal(t, Tier1, result.Tier)

		cached, ok := engine.Cached(entry)
		require.True(t, ok)
		require.Equal(t, result.Status, cached.Status)
	})

	t.Run("missing command", func(t *testing.T) {
		t.Parallel()

		engine := newTestEngine(t)
		entry := config.Entry{
			Name:      "ghost",
			Scope:     config.ScopeUser,
			Enabled:   true,
			Transport: config.TransportConfig{Command: "mcpscope-test-no-such-binary"},
		}

		result := engine.CheckTier1(context.Background(), entry)
		require.Equal(t, StatusCommandNotFound, result.Status)
		require.NotEmpty(t, result.Error)
	})
}

func TestEngine_CheckTier1_Endpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		expected   Status
	}{
		{name: "200 is reachable", statusCode: http.StatusOK, expected: StatusReachable},
		{name: "404 still means something answered", statusCode: http.StatusNotFound, expected: StatusReachable},
		{name: "500 still means something answered", statusCode: http.StatusInternalServerError, expected: StatusReachable},
		{name: "401 is an auth failure", statusCode: http.StatusUnauthorized, expected: StatusAuthFailed},
		{name: "403 is an auth failure", statusCode: http.StatusForbidden, expected: StatusAuthFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.statusCode)
			}))
			t.Cleanup(srv.Close)

			engine := newTestEngine(t)
			entry := config.Entry{
				Name:      "remote",
				Scope:     config.ScopeUser,
				Enabled:   true,
				Transport: config.TransportConfig{URL: srv.URL},
			}

			result := engine.CheckTier1(context.Background(), entry)
			require.Equal(t, tc.expected, result.Status)
			require.NotNil(t, result.Latency)
		})
	}

	t.Run("connection failure is unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		url := srv.URL
		srv.Close()

		engine := newTestEngine(t)
		entry := config.Entry{
			Name:      "gone",
			Scope:     config.ScopeUser,
			Enabled:   true,
			Transport: config.TransportConfig{URL: url},
		}

		result := engine.CheckTier1(context.Background(), entry)
		require.Equal(t, StatusUnreachable, result.Status)
		require.NotEmpty(t, result.Error)
		require.Nil(t, result.Latency)
	})

	t.Run("probe sends configured headers", func(t *testing.T) {
		t.Parallel()

		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
		}))
		t.Cleanup(srv.Close)

		engine := newTestEngine(t)
		entry := config.Entry{
			Name:    "remote",
			Scope:   config.ScopeUser,
			Enabled: true,
			Transport: config.TransportConfig{
				URL:     srv.URL,
				Headers: map[string]string{"Authorization": "Bearer token"},
			},
		}

		_ = engine.CheckTier1(context.Background(), entry)
		require.Equal(t, "Bearer token", got)
	})
}

func TestEngine_CheckTier1All(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	t.Cleanup(srv.Close)

	engine := newTestEngine(t)
	entries := []config.Entry{
		{Name: "shell", Scope: config.ScopeUser, Enabled: true, Transport: config.TransportConfig{Command: "sh"}},
		{Name: "remote", Scope: config.ScopeProject, Enabled: true, Transport: config.TransportConfig{URL: srv.URL}},
		{Name: "parked", Scope: config.ScopeLocal, Enabled: false, Transport: config.TransportConfig{Command: "sh"}},
	}

	results := engine.CheckTier1All(context.Background(), entries)
	require.Len(t, results, 3)
	require.Equal(t, StatusBinaryFound, results[entries[0].Identity()].Status)
	require.Equal(t, StatusReachable, results[entries[1].Identity()].Status)
	require.Equal(t, StatusUnknown, results[entries[2].Identity()].Status)
}
