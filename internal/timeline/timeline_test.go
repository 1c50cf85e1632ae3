package timeline

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 0.0001

func TestAssembleNoTransition(t *testing.T) {
	durations := []float64{3.0, 4.0, 2.5}

	entries, err := Assemble(durations, 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if len(entries) != len(durations) {
		t.Fatalf("Expected %d entries, got %d", len(durations), len(entries))
	}

	if entries[0].VideoStart != 0 {
		t.Errorf("First slide must start at 0, got %f", entries[0].VideoStart)
	}

	// Without transitions slides sit end-to-end
	for i := 1; i < len(entries); i++ {
		if math.Abs(entries[i].VideoStart-entries[i-1].VideoEnd) > tolerance {
			t.Errorf("Slide %d: expected start %f, got %f", i, entries[i-1].VideoEnd, entries[i].VideoStart)
		}
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	if math.Abs(ProgramDuration(entries)-sum) > tolerance {
		t.Errorf("Expected program duration %f, got %f", sum, ProgramDuration(entries))
	}
}

func TestAssembleWithTransition(t *testing.T) {
	durations := []float64{3.0, 4.0, 2.5}
	transition := 0.5

	entries, err := Assemble(durations, transition)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	// Each slide after the first starts `transition` before the
	// previous one ends
	for i := 1; i < len(entries); i++ {
		expected := entries[i-1].VideoEnd - transition
		if math.Abs(entries[i].VideoStart-expected) > tolerance {
			t.Errorf("Slide %d: expected start %f, got %f", i, expected, entries[i].VideoStart)
		}
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	expected := sum - float64(len(durations)-1)*transition
	if math.Abs(ProgramDuration(entries)-expected) > tolerance {
		t.Errorf("Expected program duration %f, got %f", expected, ProgramDuration(entries))
	}
}

func TestAssembleScenario(t *testing.T) {
	// 3 slides with measured narration [2.0, 3.0, 1.5]s and a uniform
	// 1.0s pause (applied after the last slide too)
	audio := []float64{2.0, 3.0, 1.5}
	pause := 1.0

	durations := make([]float64, len(audio))
	for i, a := range audio {
		durations[i] = SlideDuration(a, pause)
	}

	entries, err := Assemble(durations, 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if math.Abs(ProgramDuration(entries)-9.5) > tolerance {
		t.Errorf("Expected 9.5s without transitions, got %f", ProgramDuration(entries))
	}

	entries, err = Assemble(durations, 0.5)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// Two transitions shorten the program by 2*0.5s
	if math.Abs(ProgramDuration(entries)-8.5) > tolerance {
		t.Errorf("Expected 8.5s with 0.5s transitions, got %f", ProgramDuration(entries))
	}
}

func TestAssembleEmpty(t *testing.T) {
	_, err := Assemble(nil, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestAssembleSingleSlideIgnoresTransition(t *testing.T) {
	entries, err := Assemble([]float64{5.0}, 1.0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if math.Abs(ProgramDuration(entries)-5.0) > tolerance {
		t.Errorf("Single slide: expected 5.0, got %f", ProgramDuration(entries))
	}
}

func TestAssembleOverlapNotClamped(t *testing.T) {
	// The overlap is applied verbatim even when it exceeds a slide's
	// duration; the resulting start may run backwards
	entries, err := Assemble([]float64{1.0, 0.5, 1.0}, 0.8)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if math.Abs(entries[1].VideoStart-0.2) > tolerance {
		t.Errorf("Expected start 0.2, got %f", entries[1].VideoStart)
	}
	// 0.2+0.5-0.8 = -0.1
	if math.Abs(entries[2].VideoStart-(-0.1)) > tolerance {
		t.Errorf("Expected unclamped start -0.1, got %f", entries[2].VideoStart)
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		caption  string
		expected float64
	}{
		{"", 1.0},
		{"hello world", 1.0},
		{"one two three four five six seven eight nine ten", 3.0},
	}

	for _, tt := range tests {
		got := EstimateDuration(tt.caption)
		if math.Abs(got-tt.expected) > tolerance {
			t.Errorf("EstimateDuration(%q): expected %f, got %f", tt.caption, tt.expected, got)
		}
	}
}

func TestMeasuredZeroDurationNotClamped(t *testing.T) {
	// A silent narration is a valid degenerate case: the slide shows
	// for exactly the pause gap
	if got := SlideDuration(0, 1.0); math.Abs(got-1.0) > tolerance {
		t.Errorf("Expected 1.0, got %f", got)
	}
}

func TestMinDuration(t *testing.T) {
	if got := MinDuration([]float64{3.0, 1.5, 2.0}); math.Abs(got-1.5) > tolerance {
		t.Errorf("Expected 1.5, got %f", got)
	}
	if got := MinDuration(nil); got != 0 {
		t.Errorf("Expected 0 for empty input, got %f", got)
	}
}
