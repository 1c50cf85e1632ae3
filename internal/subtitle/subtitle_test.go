package subtitle

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

const tolerance = 0.0001

func TestBuildCues(t *testing.T) {
	captions := []string{"first", "second", "third"}
	durations := []float64{2.0, 3.0, 1.5}
	pause := 1.0

	cues := BuildCues(captions, durations, pause)

	if len(cues) != len(captions) {
		t.Fatalf("Expected %d cues, got %d", len(captions), len(cues))
	}

	if cues[0].Start != 0 {
		t.Errorf("First cue must start at 0, got %f", cues[0].Start)
	}

	for i, c := range cues {
		if c.Index != i+1 {
			t.Errorf("Cue %d: expected index %d, got %d", i, i+1, c.Index)
		}
		if math.Abs(c.End-c.Start-durations[i]) > tolerance {
			t.Errorf("Cue %d: expected span %f, got %f", i, durations[i], c.End-c.Start)
		}
		if i > 0 {
			expected := cues[i-1].End + pause
			if math.Abs(c.Start-expected) > tolerance {
				t.Errorf("Cue %d: expected start %f, got %f", i, expected, c.Start)
			}
		}
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		seconds  float64
		sep      byte
		expected string
	}{
		{0, ',', "00:00:00,000"},
		{3661.5, ',', "01:01:01,500"},
		{3661.5, '.', "01:01:01.500"},
		{59.999, ',', "00:00:59,999"},
		// Millis are truncated, never rounded up into the next second
		{1.9999, ',', "00:00:01,999"},
	}

	for _, tt := range tests {
		got := Timestamp(tt.seconds, tt.sep)
		if got != tt.expected {
			t.Errorf("Timestamp(%f): expected %q, got %q", tt.seconds, tt.expected, got)
		}
	}
}

func TestWriteSRT(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: 2.5, Text: "hello"},
		{Index: 2, Start: 3.5, End: 5.0, Text: "world"},
	}

	var sb strings.Builder
	if err := Write(&sb, cues, FormatSRT); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := "1\n00:00:00,000 --> 00:00:02,500\nhello\n\n" +
		"2\n00:00:03,500 --> 00:00:05,000\nworld\n\n"
	if sb.String() != expected {
		t.Errorf("Unexpected SRT output:\n%q\nwant:\n%q", sb.String(), expected)
	}
}

func TestWriteVTT(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: 2.5, Text: "hello"},
	}

	var sb strings.Builder
	if err := Write(&sb, cues, FormatVTT); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Errorf("VTT output must start with WEBVTT header, got %q", out)
	}
	if !strings.Contains(out, "00:00:00.000 --> 00:00:02.500") {
		t.Errorf("VTT timestamps must use a dot separator, got %q", out)
	}
	if strings.Contains(out, "1\n00:00") {
		t.Errorf("VTT cues must not carry numeric indices, got %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("SRT"); err != nil || f != FormatSRT {
		t.Errorf("Expected case-insensitive srt, got %v, %v", f, err)
	}
	if _, err := ParseFormat("ass"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSidecarPath(t *testing.T) {
	got := SidecarPath(filepath.Join("out", "video.mp4"), FormatVTT)
	expected := filepath.Join("out", "video.vtt")
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestSRTRoundTrip(t *testing.T) {
	captions := []string{"Первый слайд", "Second slide\nwith two lines", "third"}
	durations := []float64{2.0, 3.25, 1.5}
	cues := BuildCues(captions, durations, 1.0)

	path := filepath.Join(t.TempDir(), "roundtrip.srt")
	if err := WriteFile(path, cues, FormatSRT); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	parsed, err := ParseSRTFile(path)
	if err != nil {
		t.Fatalf("ParseSRTFile failed: %v", err)
	}

	if len(parsed) != len(cues) {
		t.Fatalf("Expected %d cues, got %d", len(cues), len(parsed))
	}

	for i, c := range parsed {
		if c.Text != captions[i] {
			t.Errorf("Cue %d: expected text %q, got %q", i, captions[i], c.Text)
		}
		if math.Abs(c.Start-cues[i].Start) > 0.001 || math.Abs(c.End-cues[i].End) > 0.001 {
			t.Errorf("Cue %d: expected [%f, %f], got [%f, %f]",
				i, cues[i].Start, cues[i].End, c.Start, c.End)
		}
	}
}
