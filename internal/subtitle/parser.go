package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseSRT reads cues back from SRT text. Multi-line cue text is
// joined with newlines. Used for round-trip verification of emitted
// files.
func ParseSRT(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	var cues []Cue

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		index, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("invalid cue index %q", line)
		}

		if !scanner.Scan() {
			return nil, fmt.Errorf("cue %d: missing timestamp line", index)
		}
		start, end, err := parseTimestampLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", index, err)
		}

		var lines []string
		for scanner.Scan() {
			text := scanner.Text()
			if strings.TrimSpace(text) == "" {
				break
			}
			lines = append(lines, text)
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines, "\n"),
		})
	}

	return cues, scanner.Err()
}

// ParseSRTFile reads cues from an SRT file on disk.
func ParseSRTFile(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSRT(f)
}

func parseTimestampLine(line string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(line), " --> ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timestamp line %q", line)
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	var hours, minutes, secs, millis int
	if _, err := fmt.Sscanf(s, "%02d:%02d:%02d,%03d", &hours, &minutes, &secs, &millis); err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return float64(hours*3600+minutes*60+secs) + float64(millis)/1000, nil
}
