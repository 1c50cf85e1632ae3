package timeline

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when there are no slides to work with.
var ErrEmptyInput = errors.New("no slides in input")

const (
	// secondsPerWord is a coarse narration estimate used only when
	// accurate audio timing is not requested.
	secondsPerWord = 0.3
	// minEstimated is the floor for estimated durations. Measured
	// durations are never clamped (zero is a valid degenerate case).
	minEstimated = 1.0
)

// Slide is one caption+image pair with its narration timing.
type Slide struct {
	Index         int
	Caption       string
	AudioPath     string
	AudioDuration float64
	TotalDuration float64
}

// Entry places one slide's video layer on the absolute time axis.
// The slide's own narration audio is anchored at offset 0 within its
// clip and is never shifted into the next clip's audio.
type Entry struct {
	SlideIndex int
	VideoStart float64
	VideoEnd   float64
}

// EstimateDuration guesses narration length from the caption's word
// count. The result is at least one second.
func EstimateDuration(caption string) float64 {
	d := float64(len(strings.Fields(caption))) * secondsPerWord
	if d < minEstimated {
		d = minEstimated
	}
	return d
}

// SlideDuration is the on-screen time of one slide: narration plus the
// pause gap. The pause is applied uniformly, including after the last
// slide.
func SlideDuration(audioDuration, pause float64) float64 {
	return audioDuration + pause
}

// Assemble sequences slide durations into absolute start/end times.
// With a positive transition each slide after the first starts
// `transition` seconds before the previous one ends, so the video
// layers overlap during the cross-fade. The overlap is applied
// verbatim even when it exceeds a slide's own duration; callers are
// expected to warn about that case (see MinDuration).
func Assemble(durations []float64, transition float64) ([]Entry, error) {
	if len(durations) == 0 {
		return nil, ErrEmptyInput
	}

	entries := make([]Entry, len(durations))
	entries[0] = Entry{SlideIndex: 0, VideoStart: 0, VideoEnd: durations[0]}

	for i := 1; i < len(durations); i++ {
		start := entries[i-1].VideoEnd
		if transition > 0 {
			start -= transition
		}
		entries[i] = Entry{
			SlideIndex: i,
			VideoStart: start,
			VideoEnd:   start + durations[i],
		}
	}

	return entries, nil
}

// ProgramDuration is the overall duration of an assembled timeline.
func ProgramDuration(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].VideoEnd
}

// MinDuration returns the shortest slide duration, used to detect
// transitions longer than the clips they blend.
func MinDuration(durations []float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	min := durations[0]
	for _, d := range durations[1:] {
		if d < min {
			min = d
		}
	}
	return min
}
