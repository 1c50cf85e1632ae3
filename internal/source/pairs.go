package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/slidecast/internal/timeline"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

type pair struct {
	caption   string
	imagePath string
}

// PairSource перечисляет пары N.txt + N.jpg|jpeg|png в директории.
// Порядок — натуральная числовая сортировка по базовому имени.
type PairSource struct {
	pairs []pair
}

func NewPairSource(dir string) (*PairSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var textFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			textFiles = append(textFiles, entry.Name())
		}
	}
	NaturalSort(textFiles)

	var pairs []pair
	for _, name := range textFiles {
		base := strings.TrimSuffix(name, filepath.Ext(name))

		imagePath := ""
		for _, ext := range imageExtensions {
			candidate := filepath.Join(dir, base+ext)
			if _, err := os.Stat(candidate); err == nil {
				imagePath = candidate
				break
			}
		}
		if imagePath == "" {
			fmt.Printf("[!] Нет изображения для %s, слайд пропущен\n", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Printf("[!] Не удалось прочитать %s: %v, слайд пропущен\n", name, err)
			continue
		}

		pairs = append(pairs, pair{
			caption:   strings.TrimSpace(string(data)),
			imagePath: imagePath,
		})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("в директории %s: %w", dir, timeline.ErrEmptyInput)
	}

	return &PairSource{pairs: pairs}, nil
}

func (s *PairSource) SlideCount() int {
	return len(s.pairs)
}

func (s *PairSource) Caption(index int) string {
	return s.pairs[index].caption
}

func (s *PairSource) RenderSlide(index int) (image.Image, error) {
	f, err := os.Open(s.pairs[index].imagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования %s: %w", s.pairs[index].imagePath, err)
	}
	return img, nil
}

func (s *PairSource) Close() error {
	return nil
}
