package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ivlev/slidecast/internal/system"
)

const (
	googleTTSEndpoint = "https://translate.google.com/translate_tts"
	// The endpoint rejects queries past ~200 characters, longer
	// captions are synthesized in chunks and the MP3 frames
	// concatenated.
	googleChunkRunes = 200
	googleUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// GoogleProvider synthesizes speech through the Google Translate TTS
// endpoint. Speed is applied with an ffmpeg atempo pass since the
// endpoint itself only knows normal/slow.
type GoogleProvider struct {
	Lang        string
	SpeedFactor float64

	client *http.Client
}

func NewGoogleProvider(lang string, speedFactor float64) *GoogleProvider {
	return &GoogleProvider{
		Lang:        lang,
		SpeedFactor: speedFactor,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, errEmptyText
	}

	target := outPath
	if p.SpeedFactor != 1.0 {
		target = outPath + ".raw.mp3"
		defer os.Remove(target)
	}

	f, err := os.Create(target)
	if err != nil {
		return 0, err
	}

	for _, chunk := range SplitChunks(text, googleChunkRunes) {
		data, err := p.fetchChunk(ctx, chunk)
		if err != nil {
			f.Close()
			return 0, err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return 0, err
		}
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	if p.SpeedFactor != 1.0 {
		if err := applyTempo(ctx, target, outPath, p.SpeedFactor); err != nil {
			return 0, err
		}
	}

	return system.AudioDuration(outPath)
}

func (p *GoogleProvider) fetchChunk(ctx context.Context, text string) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", p.Lang)
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleTTSEndpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", googleUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google tts: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// SplitChunks splits text on whitespace into runs of at most maxRunes
// runes. A single overlong word becomes its own chunk.
func SplitChunks(text string, maxRunes int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > maxRunes {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// AtempoFilter builds an ffmpeg atempo chain for the speed factor.
// atempo only accepts [0.5, 2.0] per instance, so factors outside that
// range are decomposed into a chain.
func AtempoFilter(speedFactor float64) string {
	var parts []string
	for speedFactor > 2.0 {
		parts = append(parts, "atempo=2.0")
		speedFactor /= 2.0
	}
	for speedFactor < 0.5 {
		parts = append(parts, "atempo=0.5")
		speedFactor /= 0.5
	}
	parts = append(parts, fmt.Sprintf("atempo=%.6f", speedFactor))
	return strings.Join(parts, ",")
}

func applyTempo(ctx context.Context, inPath, outPath string, speedFactor float64) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", inPath,
		"-filter:a", AtempoFilter(speedFactor),
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg atempo error: %v, output: %s", err, string(out))
	}
	return nil
}
