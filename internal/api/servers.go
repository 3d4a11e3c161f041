package api

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/contracts"
)

// ServerEntry is the API-safe representation of one aggregated entry.
type ServerEntry struct {
	Name     string `doc:"Server name"                              json:"name"`
	Scope    string `doc:"Provenance scope of the entry"            json:"scope"`
	Enabled  bool   `doc:"Whether the entry is currently enabled"   json:"enabled"`
	Plugin   string `doc:"Contributing plugin ID, when applicable"  json:"plugin,omitempty"`
	Source   string `doc:"Authoritative source file for this entry" json:"source"`
	Target   string `doc:"Launch command or endpoint URL"           json:"target"`
	Health   string `doc:"Latest cached health status"              json:"health,omitempty"`
}

// ServersResponse is the response for GET /servers.
type ServersResponse struct {
	Body struct {
		Servers []ServerEntry `doc:"Aggregated MCP server entries" json:"servers"`
	}
}

// RegisterServerRoutes sets up the entry listing API endpoint routes.
func RegisterServerRoutes(
	routerAPI huma.API,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
	apiPathPrefix string,
) {
	tags := []string{"Servers"}

	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Path:        apiPathPrefix,
			Summary:     "List all aggregated MCP server entries",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersResponse, error) {
			return handleListServers(ctx, aggregator, prober)
		},
	)
}

// handleListServers resolves the current entry set and attaches any cached
// health status. Aggregation is re-run per request: entries carry no
// persisted identity across passes.
func handleListServers(
	ctx context.Context,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
) (*ServersResponse, error) {
	entries := aggregator.Aggregate(ctx)

	slices.SortFunc(entries, func(a, b config.Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	apiServers := make([]ServerEntry, 0, len(entries))
	for _, entry := range entries {
		apiServers = append(apiServers, toServerEntry(entry, prober))
	}

	resp := &ServersResponse{}
	resp.Body.Servers = apiServers

	return resp, nil
}

func toServerEntry(entry config.Entry, prober contracts.HealthProber) ServerEntry {
	target := entry.Transport.URL
	if kind, err := entry.Transport.Kind(); err == nil && kind == config.TransportStdio {
		target = entry.Transport.Command
	}

	apiEntry := ServerEntry{
		Name:    entry.Name,
		Scope:   string(entry.Scope),
		Enabled: entry.Enabled,
		Plugin:  entry.PluginID,
		Source:  entry.SourceFile,
		Target:  target,
	}

	if result, ok := prober.Cached(entry); ok {
		apiEntry.Health = string(result.Status)
	}

	return apiEntry
}
