package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Частота кадров выходного контейнера фиксирована.
const FPS = 24

type Config struct {
	InputPath   string `yaml:"input"`
	OutputVideo string `yaml:"output"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	TransitionDuration float64 `yaml:"transition"`
	PauseDuration      float64 `yaml:"pause"`

	MusicPath   string  `yaml:"music"`
	MusicVolume float64 `yaml:"music_volume"`

	BurnCaptions    bool   `yaml:"burn_captions"`
	CaptionFontSize int    `yaml:"caption_font_size"`
	CaptionPosition string `yaml:"caption_position"`
	CaptionFont     string `yaml:"caption_font"`

	GenerateSubtitles bool   `yaml:"subtitles"`
	SubtitleFormat    string `yaml:"subtitle_format"`
	AccurateSubtitles bool   `yaml:"accurate_subtitles"`

	TTSBackend  string  `yaml:"tts_backend"`
	TTSVoice    string  `yaml:"tts_voice"`
	Language    string  `yaml:"language"`
	SpeedFactor float64 `yaml:"speed"`

	QRLink    string `yaml:"qr_link"`
	QRCaption string `yaml:"qr_caption"`

	Workers      int    `yaml:"workers"`
	VideoEncoder string `yaml:"-"`
	Quality      int    `yaml:"-"`
	ShowStats    bool   `yaml:"stats"`
	BuildVersion string `yaml:"-"`
}

type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Filter        string
	SlideIndex    int
}

// Default возвращает конфигурацию со значениями по умолчанию
// (совпадают со значениями флагов CLI).
func Default() *Config {
	return &Config{
		Width:              1280,
		Height:             720,
		TransitionDuration: 0.5,
		PauseDuration:      1.0,
		MusicVolume:        0.1,
		CaptionFontSize:    30,
		CaptionPosition:    "bottom",
		SubtitleFormat:     "srt",
		AccurateSubtitles:  true,
		TTSBackend:         "edge",
		Language:           "en",
		SpeedFactor:        1.0,
	}
}

// Load читает YAML-файл проекта поверх значений по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("разрешение должно быть положительным, получено %dx%d", c.Width, c.Height)
	}
	if c.SpeedFactor <= 0 {
		return fmt.Errorf("скорость речи должна быть положительной, получено %.2f", c.SpeedFactor)
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 {
		return fmt.Errorf("громкость музыки должна быть в диапазоне [0,1], получено %.2f", c.MusicVolume)
	}
	if c.TransitionDuration < 0 {
		return fmt.Errorf("длительность перехода не может быть отрицательной: %.2f", c.TransitionDuration)
	}
	if c.PauseDuration < 0 {
		return fmt.Errorf("пауза между слайдами не может быть отрицательной: %.2f", c.PauseDuration)
	}
	switch c.CaptionPosition {
	case "top", "middle", "bottom":
	default:
		return fmt.Errorf("неизвестная позиция титров %q (top, middle, bottom)", c.CaptionPosition)
	}
	switch c.SubtitleFormat {
	case "srt", "vtt":
	default:
		return fmt.Errorf("неизвестный формат субтитров %q (srt, vtt)", c.SubtitleFormat)
	}
	switch c.TTSBackend {
	case "edge", "google":
	default:
		return fmt.Errorf("неизвестный TTS-бэкенд %q (edge, google)", c.TTSBackend)
	}
	return nil
}
