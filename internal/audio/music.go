package audio

import (
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ivlev/slidecast/internal/system"
)

// LoopsNeeded returns how many copies of the music are required to
// cover the target duration before trimming.
func LoopsNeeded(musicDuration, targetDuration float64) int {
	if musicDuration <= 0 || musicDuration >= targetDuration {
		return 1
	}
	return int(targetDuration/musicDuration) + 1
}

// PrepareMusic зацикливает музыку до длительности программы, обрезает
// ровно по ней (atrim усекает, не округляет) и применяет множитель
// громкости к каждому сэмплу.
func PrepareMusic(musicPath, outPath string, targetDuration, volume float64) error {
	sourceDuration, err := system.AudioDuration(musicPath)
	if err != nil {
		return fmt.Errorf("не удалось определить длительность музыки: %w", err)
	}

	loops := LoopsNeeded(sourceDuration, targetDuration)

	err = ffmpeg.Input(musicPath, ffmpeg.KwArgs{"stream_loop": loops - 1}).
		Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{"start": 0, "end": targetDuration}).
		Filter("volume", ffmpeg.Args{fmt.Sprintf("%.6f", volume)}).
		Output(outPath, ffmpeg.KwArgs{"acodec": "libmp3lame", "q:a": 4}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg music loop error: %w", err)
	}
	return nil
}
