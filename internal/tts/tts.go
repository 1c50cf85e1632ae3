package tts

import (
	"context"
	"errors"
	"fmt"
)

// Provider synthesizes narration for one caption and reports the
// resulting audio duration in seconds. Implementations are resolved
// once at startup into concrete strategy objects; callers treat
// fallback between backends as transparent.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text, outPath string) (float64, error)
}

var errEmptyText = errors.New("empty text")

// Chain tries providers in a fixed, documented order (edge → google)
// and falls back on failure. Only a fully exhausted chain is an error.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	var lastErr error
	for i, p := range c.providers {
		duration, err := p.Synthesize(ctx, text, outPath)
		if err == nil {
			return duration, nil
		}
		lastErr = err
		if i < len(c.providers)-1 {
			fmt.Printf("[!] Синтез через %s не удался (%v), переключаемся на %s\n",
				p.Name(), err, c.providers[i+1].Name())
		}
	}
	return 0, fmt.Errorf("все TTS-бэкенды исчерпаны: %w", lastErr)
}

// Options configures backend construction.
type Options struct {
	Backend     string
	Language    string
	Voice       string
	SpeedFactor float64
}

// NewProvider resolves the backend selector into a concrete provider.
// The "edge" backend carries the google backend as fallback; "google"
// stands alone. Unknown selectors are rejected up front rather than
// silently replaced.
func NewProvider(opts Options) (Provider, error) {
	google := NewGoogleProvider(opts.Language, opts.SpeedFactor)

	switch opts.Backend {
	case "edge":
		edge := NewEdgeProvider(opts.Language, opts.Voice, opts.SpeedFactor)
		return NewChain(edge, google), nil
	case "google":
		return google, nil
	default:
		return nil, fmt.Errorf("неизвестный TTS-бэкенд %q", opts.Backend)
	}
}
