package caption

import (
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	o := &Overlay{FontSize: 30, Position: "bottom"}
	filter := o.Filter("hello world", 1280, 720)

	if !strings.HasPrefix(filter, "drawtext=") {
		t.Fatalf("Expected drawtext filter, got %q", filter)
	}
	for _, want := range []string{
		"text='hello world'",
		"fontsize=30",
		"fontcolor=white",
		"box=1",
		"boxcolor=black@0.7",
		"x=(w-text_w)/2",
		"y=h-text_h-20",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("Filter missing %q: %s", want, filter)
		}
	}
}

func TestFilterPositions(t *testing.T) {
	tests := []struct {
		position string
		y        string
	}{
		{"top", "y=20"},
		{"middle", "y=(h-text_h)/2"},
		{"bottom", "y=h-text_h-20"},
	}

	for _, tt := range tests {
		o := &Overlay{FontSize: 30, Position: tt.position}
		filter := o.Filter("text", 1280, 720)
		if !strings.Contains(filter, tt.y) {
			t.Errorf("Position %q: expected %q in %s", tt.position, tt.y, filter)
		}
	}
}

func TestFilterEmptyCaption(t *testing.T) {
	o := &Overlay{FontSize: 30, Position: "bottom"}
	if got := o.Filter("   ", 1280, 720); got != "" {
		t.Errorf("Expected empty filter for blank caption, got %q", got)
	}
}

func TestFilterFontFile(t *testing.T) {
	o := &Overlay{FontSize: 30, Position: "bottom", FontFile: "/fonts/mono.ttf"}
	filter := o.Filter("text", 1280, 720)
	if !strings.Contains(filter, `fontfile='/fonts/mono.ttf'`) {
		t.Errorf("Filter missing fontfile: %s", filter)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"50% off", `50\% off`},
		{"a:b", `a\:b`},
		{"it's", `it\'s`},
		{`back\slash`, `back\\slash`},
		{"a,b;c", `a\,b\;c`},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.expected {
			t.Errorf("Escape(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := WrapText("one two three four", 9)
	expected := "one two\nthree\nfour"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	// Overlong words stay intact on their own line
	got = WrapText("tiny incomprehensibilities tiny", 10)
	if !strings.Contains(got, "incomprehensibilities") {
		t.Errorf("Overlong word was mangled: %q", got)
	}
}
