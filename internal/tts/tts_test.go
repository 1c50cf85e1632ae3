package tts

import (
	"strings"
	"testing"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		speed    float64
		expected string
	}{
		{1.0, "+0%"},
		{1.5, "+50%"},
		{0.75, "-25%"},
		{2.0, "+100%"},
	}

	for _, tt := range tests {
		if got := FormatRate(tt.speed); got != tt.expected {
			t.Errorf("FormatRate(%f): expected %q, got %q", tt.speed, tt.expected, got)
		}
	}
}

func TestDefaultVoice(t *testing.T) {
	if got := DefaultVoice("ja"); got != "ja-JP-NanamiNeural" {
		t.Errorf("Expected Japanese default voice, got %q", got)
	}
	if got := DefaultVoice("xx"); got != fallbackVoice {
		t.Errorf("Expected fallback voice for unknown language, got %q", got)
	}
}

func TestSplitChunks(t *testing.T) {
	text := "alpha beta gamma delta"
	chunks := SplitChunks(text, 11)

	for _, c := range chunks {
		if len([]rune(c)) > 11 {
			t.Errorf("Chunk %q exceeds the limit", c)
		}
	}
	if got := strings.Join(chunks, " "); got != text {
		t.Errorf("Chunks must rejoin to the original text, got %q", got)
	}
}

func TestSplitChunksOverlongWord(t *testing.T) {
	chunks := SplitChunks("short "+strings.Repeat("x", 30)+" tail", 10)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if len(chunks[1]) != 30 {
		t.Errorf("Overlong word must stay intact, got %q", chunks[1])
	}
}

func TestAtempoFilter(t *testing.T) {
	tests := []struct {
		speed    float64
		expected string
	}{
		{1.5, "atempo=1.500000"},
		{3.0, "atempo=2.0,atempo=1.500000"},
		{0.25, "atempo=0.5,atempo=0.500000"},
	}

	for _, tt := range tests {
		if got := AtempoFilter(tt.speed); got != tt.expected {
			t.Errorf("AtempoFilter(%f): expected %q, got %q", tt.speed, tt.expected, got)
		}
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Options{Backend: "edge", Language: "en", SpeedFactor: 1.0})
	if err != nil {
		t.Fatalf("NewProvider(edge) failed: %v", err)
	}
	// Edge carries google as fallback
	if p.Name() != "chain" {
		t.Errorf("Expected chained provider for edge, got %q", p.Name())
	}

	p, err = NewProvider(Options{Backend: "google", Language: "en", SpeedFactor: 1.0})
	if err != nil {
		t.Fatalf("NewProvider(google) failed: %v", err)
	}
	if p.Name() != "google" {
		t.Errorf("Expected google provider, got %q", p.Name())
	}

	if _, err := NewProvider(Options{Backend: "festival"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
