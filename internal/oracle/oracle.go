// Package oracle is the completion-oracle boundary. The engine depends
// only on the Oracle interface; vendor integrations are swappable
// adapters behind it.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotConfigured means the adapter is missing credentials or endpoint
// configuration. Fatal; callers surface it immediately and do not retry.
var ErrNotConfigured = errors.New("oracle: not configured")

// ErrCommunication covers network failures, timeouts, and empty
// responses from the completion service. Retry is caller policy.
var ErrCommunication = errors.New("oracle: communication failure")

// Oracle is the opaque text/JSON completion capability. Complete sends
// the rendered instruction plus a JSON-encoded input payload and returns
// the raw response body.
type Oracle interface {
	Name() string
	Complete(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}
