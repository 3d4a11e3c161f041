package health

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"

	"github.com/mcpscope/mcpscope/internal/config"
)

// CheckTier1 performs the cheap, side-effect-free reachability probe for an
// entry. A disabled entry short-circuits to StatusUnknown without any I/O.
// The call never fails; every outcome is a classified result.
func (e *Engine) CheckTier1(ctx context.Context, entry config.Entry) Result {
	if !entry.Enabled {
		return Result{Status: StatusUnknown, Tier: Tier1, CheckedAt: e.now()}
	}

	kind, err := entry.Transport.Kind()
	if err != nil {
		return e.record(entry, Result{
			Status:    StatusError,
			Tier:      Tier1,
			Error:     err.Error(),
			CheckedAt: e.now(),
		})
	}

	var result Result
	switch kind {
	case config.TransportStdio:
		result = e.probeBinary(entry)
	case config.TransportHTTP:
		result = e.probeEndpoint(ctx, entry)
	}

	return e.record(entry, result)
}

// probeBinary resolves whether the entry's command exists as an executable on
// the search path.
func (e *Engine) probeBinary(entry config.Entry) Result {
	result := Result{Tier: Tier1, CheckedAt: e.now()}

	if _, err := exec.LookPath(entry.Transport.Command); err != nil {
		result.Status = StatusCommandNotFound
		result.Error = err.Error()
		return result
	}

	result.Status = StatusBinaryFound
	return result
}

// probeEndpoint issues a minimal no-body HTTP probe against the entry's URL.
// Any response at all means the server is up (the specific route may simply be
// wrong), except auth rejections, which classify separately. Connection, DNS
// and timeout failures classify as unreachable.
func (e *Engine) probeEndpoint(ctx context.Context, entry config.Entry) Result {
	result := Result{Tier: Tier1}

	probeCtx, cancel := context.WithTimeout(ctx, e.opts.HTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, entry.Transport.URL, nil)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		result.CheckedAt = e.now()
		return result
	}
	for k, v := range entry.Transport.Headers {
		req.Header.Set(k, v)
	}

	start := e.now()
	resp, err := e.httpClient.Do(req)
	elapsed := e.now().Sub(start)
	result.CheckedAt = e.now()

	if err != nil {
		result.Status = StatusUnreachable
		result.Error = err.Error()
		return result
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result.Latency = &elapsed

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		result.Status = StatusAuthFailed
		result.Error = fmt.Sprintf("endpoint returned HTTP %d", resp.StatusCode)
	default:
		result.Status = StatusReachable
	}

	return result
}
