package health

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	internalcmd "github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
)

// CheckTier2 performs the full protocol-handshake probe: establish the real
// client connection for the entry's transport, perform the MCP handshake,
// issue a liveness ping, and enumerate tools best-effort. Connect and
// handshake are bounded by the configured connect timeout; a hung connect
// loses the race against the timer and is discarded safely. A disabled entry
// short-circuits to StatusUnknown without any I/O.
func (e *Engine) CheckTier2(ctx context.Context, entry config.Entry) Result {
	if !entry.Enabled {
		return Result{Status: StatusUnknown, Tier: Tier2, CheckedAt: e.now()}
	}

	kind, err := entry.Transport.Kind()
	if err != nil {
		return e.record(entry, Result{
			Status:    StatusError,
			Tier:      Tier2,
			Error:     err.Error(),
			CheckedAt: e.now(),
		})
	}

	start := e.now()

	connectCtx, cancel := context.WithTimeout(ctx, e.opts.ConnectTimeout)
	defer cancel()

	mcpClient, err := e.connect(connectCtx, entry, kind)
	if err != nil {
		return e.record(entry, e.failure(entry, err))
	}
	// Always release the connection; a close failure must not corrupt the check.
	defer func() {
		if closeErr := mcpClient.Close(); closeErr != nil {
			e.logger.Debug("Error closing probe client", "name", entry.Name, "error", closeErr)
		}
	}()

	initResult, err := mcpClient.Initialize(connectCtx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "mcpscope", Version: internalcmd.Version()},
		},
	})
	if err != nil {
		return e.record(entry, e.failure(entry, err))
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, e.opts.PingTimeout)
	defer cancelPing()

	if err := mcpClient.Ping(pingCtx); err != nil {
		return e.record(entry, e.failure(entry, err))
	}

	latency := e.now().Sub(start)

	result := Result{
		Status:    StatusHealthy,
		Tier:      Tier2,
		Latency:   &latency,
		CheckedAt: e.now(),
	}

	if initResult != nil && initResult.ServerInfo.Name != "" {
		result.ServerInfo = &ServerInfo{
			Name:    initResult.ServerInfo.Name,
			Version: initResult.ServerInfo.Version,
		}
	}

	// Tool enumeration is best-effort: its failure never downgrades the result.
	toolsCtx, cancelTools := context.WithTimeout(ctx, e.opts.PingTimeout)
	defer cancelTools()

	if tools, err := mcpClient.ListTools(toolsCtx, mcp.ListToolsRequest{}); err == nil {
		count := len(tools.Tools)
		result.ToolCount = &count
	} else {
		e.logger.Debug("Tool enumeration failed", "name", entry.Name, "error", err)
	}

	return e.record(entry, result)
}

// connect creates and starts the MCP client appropriate to the transport:
// spawn-and-handshake for process entries, streaming-connect for endpoints.
func (e *Engine) connect(ctx context.Context, entry config.Entry, kind config.TransportKind) (*client.Client, error) {
	switch kind {
	case config.TransportHTTP:
		var opts []transport.StreamableHTTPCOption
		if len(entry.Transport.Headers) > 0 {
			opts = append(opts, transport.WithHTTPHeaders(entry.Transport.Headers))
		}

		httpClient, err := client.NewStreamableHttpClient(entry.Transport.URL, opts...)
		if err != nil {
			return nil, err
		}
		if err := httpClient.Start(ctx); err != nil {
			_ = httpClient.Close()
			return nil, err
		}
		return httpClient, nil
	default:
		var opts []transport.StdioOption
		if dir := strings.TrimSpace(entry.Transport.WorkingDir); dir != "" {
			opts = append(opts, transport.WithCommandFunc(
				func(ctx context.Context, command string, env []string, args []string) (*exec.Cmd, error) {
					cmd := exec.CommandContext(ctx, command, args...)
					cmd.Env = append(os.Environ(), env...)
					cmd.Dir = dir
					return cmd, nil
				},
			))
		}

		stdioTransport := transport.NewStdioWithOptions(
			entry.Transport.Command,
			entry.Transport.Environ(),
			entry.Transport.Args,
			opts...,
		)

		stdioClient := client.NewClient(stdioTransport)
		if err := stdioClient.Start(ctx); err != nil {
			_ = stdioClient.Close()
			return nil, err
		}
		return stdioClient, nil
	}
}

// failure builds a classified tier-2 failure result.
func (e *Engine) failure(entry config.Entry, err error) Result {
	e.logger.Debug("Tier-2 probe failed", "name", entry.Name, "error", err)

	return Result{
		Status:    Classify(err),
		Tier:      Tier2,
		Error:     err.Error(),
		CheckedAt: e.now(),
	}
}
