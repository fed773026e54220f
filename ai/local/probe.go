package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/poiesic/jotpad/ai"
)

// Ping checks that the local model server answers GET {root}/api/tags within timeout.
// host may carry the /v1 suffix of the OpenAI-compatible API.
func Ping(ctx context.Context, host string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ai.ServerRoot(host)+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ai.ErrBackendUnavailable, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ai.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ai.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

// CheckAvailability reports whether the local model server is reachable.
// Any error, including the timeout expiring, means unavailable.
func CheckAvailability(ctx context.Context, host string, timeout time.Duration) bool {
	return Ping(ctx, host, timeout) == nil
}
