package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/engine"
	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/system"
	"github.com/ivlev/slidecast/internal/tts"
	"github.com/ivlev/slidecast/internal/video"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	defaults := config.Default()

	configPtr := flag.String("config", "", "Путь к YAML-файлу проекта (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Директория с парами N.txt + N.jpg|jpeg|png или PDF-документ")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	transitionPtr := flag.Float64("transition", defaults.TransitionDuration, "Длительность перехода между слайдами (сек, 0 отключает)")
	pausePtr := flag.Float64("pause", defaults.PauseDuration, "Пауза после озвучки каждого слайда (сек)")
	musicPtr := flag.String("music", "", "Путь к фоновой музыке")
	musicVolumePtr := flag.Float64("music-volume", defaults.MusicVolume, "Громкость музыки от 0.0 до 1.0")
	widthPtr := flag.Int("width", defaults.Width, "Ширина")
	heightPtr := flag.Int("height", defaults.Height, "Высота")
	burnPtr := flag.Bool("burn-captions", false, "Выжигать титры в кадр")
	fontSizePtr := flag.Int("caption-font-size", defaults.CaptionFontSize, "Размер шрифта титров")
	positionPtr := flag.String("caption-position", defaults.CaptionPosition, "Позиция титров: top, middle, bottom")
	fontPtr := flag.String("caption-font", "", "Файл шрифта для титров")
	subtitlesPtr := flag.Bool("subtitles", false, "Генерировать файл субтитров рядом с видео")
	subFormatPtr := flag.String("subtitle-format", defaults.SubtitleFormat, "Формат субтитров: srt, vtt")
	accuratePtr := flag.Bool("accurate-subtitles", defaults.AccurateSubtitles, "Точные тайминги субтитров по синтезированному аудио")
	ttsPtr := flag.String("tts", defaults.TTSBackend, "TTS-бэкенд: edge, google")
	voicePtr := flag.String("voice", "", "Голос TTS (для edge)")
	langPtr := flag.String("lang", defaults.Language, "Язык озвучки")
	speedPtr := flag.Float64("speed", defaults.SpeedFactor, "Скорость речи (1.0 — нормальная)")
	qrLinkPtr := flag.String("qr-link", "", "Ссылка для финального слайда с QR-кодом")
	qrCaptionPtr := flag.String("qr-caption", "", "Титр финального слайда с QR-кодом")
	workersPtr := flag.Int("workers", 0, "Число энкодеров (0 — по ресурсам машины)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	listLangsPtr := flag.Bool("list-languages", false, "Показать поддерживаемые языки и выйти")
	listVoicesPtr := flag.Bool("list-voices", false, "Показать голоса Edge TTS и выйти")

	flag.Parse()

	if *listLangsPtr {
		tts.ListLanguages()
		return
	}
	if *listVoicesPtr {
		tts.ListVoices()
		return
	}

	cfg := defaults
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения конфигурации: %v", err)
		}
		cfg = loaded
	}

	// Явно переданные флаги перекрывают значения из файла проекта
	override := *configPtr == ""
	apply := func(set bool) bool { return override || set }
	flagSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })

	if apply(flagSet["input"]) && *inputPtr != "" {
		cfg.InputPath = *inputPtr
	}
	if apply(flagSet["output"]) && *outputPtr != "" {
		cfg.OutputVideo = *outputPtr
	}
	if apply(flagSet["transition"]) {
		cfg.TransitionDuration = *transitionPtr
	}
	if apply(flagSet["pause"]) {
		cfg.PauseDuration = *pausePtr
	}
	if apply(flagSet["music"]) && *musicPtr != "" {
		cfg.MusicPath = *musicPtr
	}
	if apply(flagSet["music-volume"]) {
		cfg.MusicVolume = *musicVolumePtr
	}
	if apply(flagSet["width"]) {
		cfg.Width = *widthPtr
	}
	if apply(flagSet["height"]) {
		cfg.Height = *heightPtr
	}
	if apply(flagSet["burn-captions"]) {
		cfg.BurnCaptions = *burnPtr
	}
	if apply(flagSet["caption-font-size"]) {
		cfg.CaptionFontSize = *fontSizePtr
	}
	if apply(flagSet["caption-position"]) {
		cfg.CaptionPosition = *positionPtr
	}
	if apply(flagSet["caption-font"]) && *fontPtr != "" {
		cfg.CaptionFont = *fontPtr
	}
	if apply(flagSet["subtitles"]) {
		cfg.GenerateSubtitles = *subtitlesPtr
	}
	if apply(flagSet["subtitle-format"]) {
		cfg.SubtitleFormat = *subFormatPtr
	}
	if apply(flagSet["accurate-subtitles"]) {
		cfg.AccurateSubtitles = *accuratePtr
	}
	if apply(flagSet["tts"]) {
		cfg.TTSBackend = *ttsPtr
	}
	if apply(flagSet["voice"]) && *voicePtr != "" {
		cfg.TTSVoice = *voicePtr
	}
	if apply(flagSet["lang"]) {
		cfg.Language = *langPtr
	}
	if apply(flagSet["speed"]) {
		cfg.SpeedFactor = *speedPtr
	}
	if apply(flagSet["qr-link"]) && *qrLinkPtr != "" {
		cfg.QRLink = *qrLinkPtr
	}
	if apply(flagSet["qr-caption"]) && *qrCaptionPtr != "" {
		cfg.QRCaption = *qrCaptionPtr
	}
	if apply(flagSet["workers"]) {
		cfg.Workers = *workersPtr
	}
	if apply(flagSet["stats"]) {
		cfg.ShowStats = *statsPtr
	}

	if cfg.InputPath == "" {
		log.Fatalf("[-] Ошибка: не указан входной каталог или PDF (-input)")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	if !tts.IsSupportedLanguage(cfg.Language) {
		fmt.Printf("[!] Язык %q не входит в список известных, синтез может не сработать\n", cfg.Language)
	} else {
		fmt.Printf("[*] Язык озвучки: %s (%s)\n", tts.SupportedLanguages[cfg.Language], cfg.Language)
	}

	// Инициализируем источник слайдов
	var src source.Source
	var err error
	if strings.HasSuffix(strings.ToLower(cfg.InputPath), ".pdf") {
		src, err = source.NewPDFSource(cfg.InputPath)
	} else {
		src, err = source.NewPairSource(cfg.InputPath)
	}
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	if cfg.QRLink != "" {
		src = source.WithEndCard(src, cfg.QRLink, cfg.QRCaption)
	}

	fmt.Printf("[*] Найдено слайдов: %d\n", src.SlideCount())

	// Генерация имени выходного файла, если не задано
	if cfg.OutputVideo == "" {
		baseName := filepath.Base(strings.TrimSuffix(cfg.InputPath, "/"))
		baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(baseName, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}
	if dir := filepath.Dir(cfg.OutputVideo); dir != "." {
		os.MkdirAll(dir, 0755)
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName
	if cfg.Quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			cfg.Quality = 75
		case "h264_nvenc":
			cfg.Quality = 28
		default:
			cfg.Quality = 23
		}
	}

	provider, err := tts.NewProvider(tts.Options{
		Backend:     cfg.TTSBackend,
		Language:    cfg.Language,
		Voice:       cfg.TTSVoice,
		SpeedFactor: cfg.SpeedFactor,
	})
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации TTS: %v", err)
	}

	pipeline := engine.NewPipeline(cfg, src, &video.FFmpegEncoder{}, provider)
	if err := pipeline.Run(context.Background()); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}
