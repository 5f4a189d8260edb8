package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// Gemini is a thin wrapper around the official genai client.
type Gemini struct {
	cli     *genai.Client
	model   string
	rl      *throttle
	timeout time.Duration
}

// NewGemini builds the Gemini adapter. The API key comes from the
// environment (GEMINI_API_KEY / GOOGLE_API_KEY, read by the genai SDK);
// without one the adapter refuses to start rather than failing on the
// first call.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) == "" &&
		strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNotConfigured)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	if model == "" {
		model = strings.TrimSpace(os.Getenv("ORACLE_MODEL"))
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{
		cli:     cli,
		model:   model,
		rl:      newThrottle(envFloat("ORACLE_RPS"), envInt("ORACLE_BURST")),
		timeout: envDuration("ORACLE_TIMEOUT", 90*time.Second),
	}, nil
}

func (g *Gemini) Name() string { return "Gemini:" + g.model }

func (g *Gemini) Close() error {
	g.rl.stop()
	return nil
}

// Complete sends the prompt plus the JSON-encoded input and requests
// application/json back. Three attempts with exponential backoff; every
// attempt runs under the bounded per-call timeout so a stuck upstream
// surfaces as a failure instead of hanging.
func (g *Gemini) Complete(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	in, _ := json.MarshalIndent(input, "", "  ")
	full := prompt + "\n\n[INPUT JSON]\n" + string(in)
	log.Printf("oracle: request (%s): %d bytes", g.model, len(full))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := g.rl.wait(ctx); err != nil {
			lastErr = err
			break
		}
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := g.cli.Models.GenerateContent(callCtx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		cancel()
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("empty response")
		} else {
			return json.RawMessage(resp.Candidates[0].Content.Parts[0].Text), nil
		}
		if ctx.Err() != nil {
			break
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return nil, fmt.Errorf("%w: %v", ErrCommunication, lastErr)
}

func envFloat(key string) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func envInt(key string) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
