package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Placement задает позицию одной дорожки озвучки на общей оси времени.
// Дорожки раскладываются по началу видеослоя своего слайда и никогда
// не сдвигаются внутрь соседнего клипа.
type Placement struct {
	Path  string
	Start float64
}

// MixTrack собирает финальную аудиодорожку: тишина на всю длительность
// программы + озвучка каждого слайда через adelay + (опционально) уже
// подготовленная музыкальная подложка. Суммирование через amix без
// нормализации.
func MixTrack(ctx context.Context, placements []Placement, musicPath string, totalDuration float64, outPath string) error {
	args := []string{"-y",
		// Тишина как база гарантирует точную длительность дорожки
		"-f", "lavfi", "-i", fmt.Sprintf("anullsrc=r=44100:cl=stereo:d=%f", totalDuration),
	}

	for _, p := range placements {
		args = append(args, "-i", p.Path)
	}

	musicIndex := -1
	if musicPath != "" {
		musicIndex = len(placements) + 1
		args = append(args, "-i", musicPath)
	}

	var filterParts []string
	mixInputs := []string{"[0]"}

	for i, p := range placements {
		delayMs := int(p.Start * 1000)
		label := fmt.Sprintf("n%d", i+1)
		filterParts = append(filterParts,
			fmt.Sprintf("[%d:a]aresample=44100,adelay=%d|%d[%s]", i+1, delayMs, delayMs, label))
		mixInputs = append(mixInputs, "["+label+"]")
	}

	if musicIndex != -1 {
		filterParts = append(filterParts,
			fmt.Sprintf("[%d:a]aresample=44100[bg]", musicIndex))
		mixInputs = append(mixInputs, "[bg]")
	}

	filter := strings.Join(filterParts, ";")
	if filter != "" {
		filter += ";"
	}
	// duration=first обрезает сумму по базе тишины
	filter += strings.Join(mixInputs, "") +
		fmt.Sprintf("amix=inputs=%d:duration=first:dropout_transition=0:normalize=0[aout]", len(mixInputs))

	args = append(args,
		"-filter_complex", filter,
		"-map", "[aout]",
		"-c:a", "aac", "-b:a", "192k",
		outPath,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mix error: %v, output: %s", err, string(out))
	}
	return nil
}
