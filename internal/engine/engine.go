package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slidecast/internal/audio"
	"github.com/ivlev/slidecast/internal/caption"
	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/subtitle"
	"github.com/ivlev/slidecast/internal/system"
	"github.com/ivlev/slidecast/internal/timeline"
	"github.com/ivlev/slidecast/internal/tts"
	"github.com/ivlev/slidecast/internal/video"
)

// Синтез не распараллеливаем слишком широко, внешние TTS-сервисы
// не любят шквал запросов
const synthesisWorkers = 4

type Pipeline struct {
	Config  *config.Config
	Source  source.Source
	Encoder video.Encoder
	TTS     tts.Provider
	tempDir string
}

func NewPipeline(cfg *config.Config, src source.Source, enc video.Encoder, provider tts.Provider) *Pipeline {
	return &Pipeline{
		Config:  cfg,
		Source:  src,
		Encoder: enc,
		TTS:     provider,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	startTime := time.Now()

	var err error
	p.tempDir, err = os.MkdirTemp("", "slidecast_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	count := p.Source.SlideCount()
	if count == 0 {
		return timeline.ErrEmptyInput
	}

	captions := make([]string, count)
	for i := 0; i < count; i++ {
		captions[i] = p.Source.Caption(i)
	}

	fmt.Println("--- [SLIDECAST ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Слайдов: %d\n", p.Config.InputPath, count)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS\n", p.Config.Width, p.Config.Height, config.FPS)
	fmt.Println("--------------------------")

	// Субтитры — независимый проход, до записи видео. Ошибка формата
	// фатальна и не должна оставить частичного вывода.
	if p.Config.GenerateSubtitles {
		if err := p.writeSubtitles(ctx, captions); err != nil {
			return err
		}
	}

	// 1. Синтез озвучки (длительности независимы, считаем параллельно)
	synthStart := time.Now()
	slides, err := p.synthesizeNarration(ctx, captions)
	if err != nil {
		return err
	}
	synthTime := time.Since(synthStart)

	// 2. Таймлайн
	durations := make([]float64, count)
	for i, s := range slides {
		durations[i] = timeline.SlideDuration(s.AudioDuration, p.Config.PauseDuration)
		fmt.Printf("[*] Слайд %d: озвучка %.2fs, на экране %.2fs\n", i+1, s.AudioDuration, durations[i])
	}

	fade := p.Config.TransitionDuration
	if fade > 0 && count > 1 && fade >= timeline.MinDuration(durations) {
		// Перекрытие применяется как есть, без подрезки
		fmt.Printf("[!] Переход %.2fs длиннее самого короткого слайда (%.2fs)\n",
			fade, timeline.MinDuration(durations))
	}

	entries, err := timeline.Assemble(durations, fade)
	if err != nil {
		return err
	}
	totalDuration := timeline.ProgramDuration(entries)
	fmt.Printf("[*] Длительность программы: %.2fs\n", totalDuration)

	// 3. Аудиодорожка: озвучка по таймлайну + музыкальная подложка
	audioTrack, err := p.buildAudioTrack(ctx, slides, entries, totalDuration)
	if err != nil {
		return err
	}

	// 4. Кодирование сегментов
	encodeStart := time.Now()
	segments, err := p.encodeSegments(ctx, durations, captions)
	if err != nil {
		return err
	}
	encodeTime := time.Since(encodeStart)

	// 5. Финальная сборка
	fmt.Println("[*] Сборка финального видео...")
	err = p.Encoder.Concatenate(ctx, segments, entries, audioTrack, p.Config.OutputVideo, p.tempDir, *p.Config)
	if err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}

	if p.Config.ShowStats {
		totalTime := time.Since(startTime)
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Total Time: %.2fs\n"+
				"Synthesis: %.2fs\n"+
				"Encoding: %.2fs\n"+
				"Slides/sec: %.2f\n"+
				"----------------------------\n",
			totalTime.Seconds(), synthTime.Seconds(), encodeTime.Seconds(),
			float64(count)/totalTime.Seconds(),
		)
	}

	return nil
}

// synthesizeNarration озвучивает все титры и измеряет длительности.
// Пустой титр — допустимый вырожденный случай: слайд без озвучки с
// нулевой длительностью аудио.
func (p *Pipeline) synthesizeNarration(ctx context.Context, captions []string) ([]timeline.Slide, error) {
	slides := make([]timeline.Slide, len(captions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(synthesisWorkers)

	for i, text := range captions {
		i, text := i, text
		slides[i] = timeline.Slide{Index: i, Caption: text}
		if text == "" {
			continue
		}

		g.Go(func() error {
			audioPath := filepath.Join(p.tempDir, fmt.Sprintf("audio_%d.mp3", i))
			duration, err := p.TTS.Synthesize(ctx, text, audioPath)
			if err != nil {
				return fmt.Errorf("озвучка слайда %d: %w", i+1, err)
			}
			slides[i].AudioPath = audioPath
			slides[i].AudioDuration = duration
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slides, nil
}

// writeSubtitles пишет SRT/VTT рядом с видео. В точном режиме титры
// озвучиваются отдельно от основного прохода только ради измерения
// длительности.
func (p *Pipeline) writeSubtitles(ctx context.Context, captions []string) error {
	format, err := subtitle.ParseFormat(p.Config.SubtitleFormat)
	if err != nil {
		return err
	}

	durations := make([]float64, len(captions))
	if p.Config.AccurateSubtitles {
		fmt.Println("[*] Точный расчет таймингов субтитров (повторный синтез)...")
		for i, text := range captions {
			if text == "" {
				continue
			}
			probePath := filepath.Join(p.tempDir, fmt.Sprintf("sub_probe_%d.mp3", i))
			duration, err := p.TTS.Synthesize(ctx, text, probePath)
			if err != nil {
				return fmt.Errorf("тайминг субтитра %d: %w", i+1, err)
			}
			os.Remove(probePath)
			durations[i] = duration
		}
	} else {
		for i, text := range captions {
			durations[i] = timeline.EstimateDuration(text)
		}
	}

	cues := subtitle.BuildCues(captions, durations, p.Config.PauseDuration)
	path := subtitle.SidecarPath(p.Config.OutputVideo, format)
	if err := subtitle.WriteFile(path, cues, format); err != nil {
		return fmt.Errorf("ошибка записи субтитров: %w", err)
	}

	fmt.Printf("[*] Субтитры записаны: %s\n", path)
	return nil
}

// buildAudioTrack собирает единую аудиодорожку прогона. Отсутствие
// озвучки и отсутствие файла музыки — не фатальные ситуации.
func (p *Pipeline) buildAudioTrack(ctx context.Context, slides []timeline.Slide, entries []timeline.Entry, totalDuration float64) (string, error) {
	var placements []audio.Placement
	for i, s := range slides {
		if s.AudioPath == "" {
			continue
		}
		placements = append(placements, audio.Placement{
			Path:  s.AudioPath,
			Start: entries[i].VideoStart,
		})
	}
	if len(placements) == 0 {
		fmt.Println("[!] Озвучка отсутствует, аудиодорожка будет тишиной")
	}

	musicPath := ""
	if p.Config.MusicPath != "" {
		if _, err := os.Stat(p.Config.MusicPath); err != nil {
			fmt.Printf("[!] Файл музыки %s не найден, продолжаем без музыки\n", p.Config.MusicPath)
		} else {
			musicPath = filepath.Join(p.tempDir, "music.mp3")
			err := audio.PrepareMusic(p.Config.MusicPath, musicPath, totalDuration, p.Config.MusicVolume)
			if err != nil {
				fmt.Printf("[!] Не удалось подготовить музыку: %v, продолжаем без музыки\n", err)
				musicPath = ""
			}
		}
	}

	trackPath := filepath.Join(p.tempDir, "mix.m4a")
	if err := audio.MixTrack(ctx, placements, musicPath, totalDuration, trackPath); err != nil {
		return "", fmt.Errorf("ошибка микширования аудио: %w", err)
	}
	return trackPath, nil
}

// encodeSegments кодирует по одному сегменту на слайд в пуле воркеров.
func (p *Pipeline) encodeSegments(ctx context.Context, durations []float64, captions []string) ([]string, error) {
	count := len(durations)

	var overlay *caption.Overlay
	if p.Config.BurnCaptions {
		if !system.CheckFilterSupport("drawtext") {
			// Деградируем без титров, но с предупреждением
			fmt.Println("[!] ffmpeg собран без drawtext, титры не будут выжжены")
		} else {
			overlay = &caption.Overlay{
				FontSize: p.Config.CaptionFontSize,
				Position: p.Config.CaptionPosition,
				FontFile: p.Config.CaptionFont,
			}
		}
	}

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.EncodeWorkers()
	}
	if workers > count {
		workers = count
	}

	jobs := make(chan int, count)
	results := make([]string, count)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, err := p.Source.RenderSlide(i)
				if err != nil {
					log.Printf("[!] Ошибка рендеринга слайда %d: %v", i+1, err)
					continue
				}

				filter := ""
				if overlay != nil {
					filter = overlay.Filter(captions[i], p.Config.Width, p.Config.Height)
				}

				segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%d.mp4", i))
				params := config.SegmentParams{
					Width:      p.Config.Width,
					Height:     p.Config.Height,
					FPS:        config.FPS,
					Duration:   durations[i],
					Filter:     filter,
					SlideIndex: i,
				}

				if err := p.Encoder.EncodeSegment(ctx, img, segPath, params, p.Config.VideoEncoder, p.Config.Quality); err != nil {
					log.Printf("[!] Ошибка кодирования слайда %d: %v", i+1, err)
					continue
				}

				results[i] = segPath
				fmt.Printf("[>] Готово: %d/%d\n", i+1, count)
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, r := range results {
		if r == "" {
			return nil, fmt.Errorf("сегмент %d не был создан, см. логи ffmpeg", i+1)
		}
	}
	return results, nil
}
