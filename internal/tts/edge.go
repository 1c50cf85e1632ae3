package tts

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ivlev/slidecast/internal/system"
)

// EdgeProvider drives the edge-tts command-line tool (Microsoft Edge
// neural voices).
type EdgeProvider struct {
	Voice string
	Rate  string
}

func NewEdgeProvider(lang, voice string, speedFactor float64) *EdgeProvider {
	if voice == "" {
		voice = DefaultVoice(lang)
		if _, ok := EdgeVoices[lang]; !ok {
			fmt.Printf("[!] Для языка %q нет голосов Edge TTS, используется %s\n", lang, voice)
		}
	}
	return &EdgeProvider{
		Voice: voice,
		Rate:  FormatRate(speedFactor),
	}
}

func (p *EdgeProvider) Name() string {
	return "edge"
}

func (p *EdgeProvider) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, errEmptyText
	}
	if !system.CommandAvailable("edge-tts") {
		return 0, fmt.Errorf("edge-tts не найден в PATH")
	}

	cmd := exec.CommandContext(ctx, "edge-tts",
		"--voice", p.Voice,
		"--rate", p.Rate,
		"--text", text,
		"--write-media", outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("edge-tts error: %v, output: %s", err, string(out))
	}

	return system.AudioDuration(outPath)
}

// FormatRate converts a speed factor to the signed percent string the
// edge-tts tool expects: 1.5 → "+50%", 0.75 → "-25%", 1.0 → "+0%".
func FormatRate(speedFactor float64) string {
	switch {
	case speedFactor > 1.0:
		return fmt.Sprintf("+%d%%", int((speedFactor-1)*100))
	case speedFactor < 1.0:
		return fmt.Sprintf("-%d%%", int((1-speedFactor)*100))
	default:
		return "+0%"
	}
}
