package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/contracts"
	"github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/health"
)

// ServerHealth is the API-safe representation of one entry's health result.
type ServerHealth struct {
	Name      string     `doc:"Server name"                       json:"name"`
	Scope     string     `doc:"Provenance scope of the entry"     json:"scope"`
	Status    string     `doc:"Classified probe outcome"          json:"status"`
	Tier      int        `doc:"Probe tier that produced the result" json:"tier,omitempty"`
	Latency   *string    `doc:"Probe latency, when measured"      json:"latency,omitempty"`
	ToolCount *int       `doc:"Number of tools enumerated"        json:"toolCount,omitempty"`
	Error     string     `doc:"Failure detail, when applicable"   json:"error,omitempty"`
	CheckedAt *time.Time `doc:"When the probe completed"          json:"checkedAt,omitempty"`
}

// ServersHealthResponse is the response for GET /health/servers.
type ServersHealthResponse struct {
	Body struct {
		Servers []ServerHealth `doc:"Health statuses for all aggregated entries" json:"servers"`
	}
}

// ServerHealthRequest represents the incoming request for one entry's health.
type ServerHealthRequest struct {
	Name string `doc:"Name of the server to check" example:"github" path:"name"`
}

// ServerHealthResponse represents the wrapped API response for a ServerHealth.
type ServerHealthResponse struct {
	Body ServerHealth
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(
	routerAPI huma.API,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
	apiPathPrefix string,
) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "listServersHealth",
			Method:      http.MethodGet,
			Path:        "/servers",
			Summary:     "List the health statuses for all servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersHealthResponse, error) {
			return handleHealthServers(ctx, aggregator, prober)
		},
	)

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getServerHealth",
			Method:      http.MethodGet,
			Path:        "/servers/{name}",
			Summary:     "Get the health status of a server",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerHealthRequest) (*ServerHealthResponse, error) {
			return handleHealthServer(ctx, aggregator, prober, input.Name)
		},
	)
}

// handleHealthServers reports the cached health for every aggregated entry.
// Entries that were never probed, or whose result expired, report as unknown.
func handleHealthServers(
	ctx context.Context,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
) (*ServersHealthResponse, error) {
	entries := aggregator.Aggregate(ctx)

	slices.SortFunc(entries, func(a, b config.Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	apiServers := make([]ServerHealth, 0, len(entries))
	for _, entry := range entries {
		apiServers = append(apiServers, toServerHealth(entry, prober))
	}

	resp := &ServersHealthResponse{}
	resp.Body.Servers = apiServers

	return resp, nil
}

// handleHealthServer reports the cached health for one entry by name.
func handleHealthServer(
	ctx context.Context,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
	name string,
) (*ServerHealthResponse, error) {
	matches := config.Find(aggregator.Aggregate(ctx), name, "")
	if len(matches) == 0 {
		return nil, huma.Error404NotFound(fmt.Sprintf("%s: %s", errors.ErrEntryNotFound.Error(), name))
	}

	return &ServerHealthResponse{Body: toServerHealth(matches[0], prober)}, nil
}

func toServerHealth(entry config.Entry, prober contracts.HealthProber) ServerHealth {
	apiHealth := ServerHealth{
		Name:   entry.Name,
		Scope:  string(entry.Scope),
		Status: string(health.StatusUnknown),
	}

	result, ok := prober.Cached(entry)
	if !ok {
		return apiHealth
	}

	apiHealth.Status = string(result.Status)
	apiHealth.Tier = int(result.Tier)
	apiHealth.ToolCount = result.ToolCount
	apiHealth.Error = result.Error
	checkedAt := result.CheckedAt
	apiHealth.CheckedAt = &checkedAt

	if result.Latency != nil {
		latency := result.Latency.String()
		apiHealth.Latency = &latency
	}

	return apiHealth
}
