package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fake is a scriptable oracle for offline runs and tests. Responses are
// consumed in order; when the script runs out, Fail (if set) or an empty
// object is returned.
type Fake struct {
	mu        sync.Mutex
	responses []json.RawMessage
	Fail      error

	// Prompts records every rendered instruction received, newest last.
	Prompts []string
	Inputs  []any
}

// NewFake builds a fake oracle scripted with the given responses.
func NewFake(responses ...json.RawMessage) *Fake {
	return &Fake{responses: responses}
}

func (f *Fake) Name() string { return "FakeOracle" }
func (f *Fake) Close() error { return nil }

func (f *Fake) Complete(_ context.Context, prompt string, input any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	f.Inputs = append(f.Inputs, input)
	if len(f.responses) == 0 {
		if f.Fail != nil {
			return nil, f.Fail
		}
		return nil, fmt.Errorf("%w: fake script exhausted", ErrCommunication)
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next, nil
}
