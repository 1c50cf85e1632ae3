package caption

import (
	"fmt"
	"strings"
)

const (
	verticalMargin = 20
	// Approximate glyph width relative to the font size, used to wrap
	// captions to ~80% of the frame width.
	glyphWidthRatio = 0.55
	usableWidth     = 0.8
)

// Overlay builds drawtext filters that burn a caption into the frame:
// white text over a semi-opaque black box at the top, middle or bottom.
type Overlay struct {
	FontSize int
	Position string
	FontFile string
}

// Filter returns the ffmpeg drawtext filter for one caption, or an
// empty string for an empty caption.
func (o *Overlay) Filter(text string, width, height int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	maxChars := int(float64(width) * usableWidth / (float64(o.FontSize) * glyphWidthRatio))
	wrapped := WrapText(text, maxChars)

	var y string
	switch o.Position {
	case "top":
		y = fmt.Sprintf("%d", verticalMargin)
	case "middle":
		y = "(h-text_h)/2"
	default: // bottom
		y = fmt.Sprintf("h-text_h-%d", verticalMargin)
	}

	parts := []string{
		fmt.Sprintf("text='%s'", Escape(wrapped)),
		fmt.Sprintf("fontsize=%d", o.FontSize),
		"fontcolor=white",
		"box=1",
		"boxcolor=black@0.7",
		"boxborderw=12",
		"x=(w-text_w)/2",
		"y=" + y,
		fmt.Sprintf("line_spacing=%d", o.FontSize/4),
	}
	if o.FontFile != "" {
		parts = append(parts, fmt.Sprintf("fontfile='%s'", Escape(o.FontFile)))
	}

	return "drawtext=" + strings.Join(parts, ":")
}

// WrapText breaks text into lines of at most maxChars runes at word
// boundaries. Overlong words stay on their own line.
func WrapText(text string, maxChars int) string {
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > maxChars {
			lines = append(lines, current.String())
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
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}

// Escape quotes characters that are special inside a drawtext value.
func Escape(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return replacer.Replace(s)
}
