package subtitle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for format selectors other than
// "srt" and "vtt", before any file is touched.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// Format selects the subtitle serialization.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// ParseFormat validates a format selector string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Cue is one timed subtitle entry. Index is 1-based, times are seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// BuildCues accumulates cue timestamps from per-caption narration
// durations. The rule matches the video timeline except that captions
// are never cross-faded: start[0]=0, end[i]=start[i]+duration[i],
// start[i+1]=end[i]+pause.
func BuildCues(captions []string, durations []float64, pause float64) []Cue {
	cues := make([]Cue, 0, len(captions))
	current := 0.0
	for i, text := range captions {
		end := current + durations[i]
		cues = append(cues, Cue{
			Index: i + 1,
			Start: current,
			End:   end,
			Text:  text,
		})
		current = end + pause
	}
	return cues
}

// Write serializes cues in the given format.
func Write(w io.Writer, cues []Cue, format Format) error {
	switch format {
	case FormatSRT:
		for _, c := range cues {
			if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
				c.Index, Timestamp(c.Start, ','), Timestamp(c.End, ','), c.Text); err != nil {
				return err
			}
		}
	case FormatVTT:
		if _, err := io.WriteString(w, "WEBVTT\n\n"); err != nil {
			return err
		}
		for _, c := range cues {
			if _, err := fmt.Fprintf(w, "%s --> %s\n%s\n\n",
				Timestamp(c.Start, '.'), Timestamp(c.End, '.'), c.Text); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// WriteFile writes cues to path as UTF-8 text.
func WriteFile(path string, cues []Cue, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, cues, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SidecarPath derives the subtitle file path from the video path: same
// base name, extension per format.
func SidecarPath(videoPath string, format Format) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return base + "." + string(format)
}

// Timestamp formats seconds as HH:MM:SS<sep>mmm with zero padding.
// The hours field is two digits; values past 99h are not widened.
func Timestamp(seconds float64, sep byte) string {
	whole := int(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	millis := int((seconds - float64(whole)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}
