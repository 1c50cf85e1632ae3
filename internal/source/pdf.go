package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/slidecast/internal/timeline"
)

const pdfRenderDPI = 150

// PDFSource берет слайды из страниц PDF-документа. Титры читаются из
// файлов N.txt рядом с документом (1.txt для первой страницы и т.д.).
type PDFSource struct {
	doc      *fitz.Document
	path     string
	captions []string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}

	count := doc.NumPage()
	if count == 0 {
		doc.Close()
		return nil, fmt.Errorf("в документе %s: %w", path, timeline.ErrEmptyInput)
	}

	dir := filepath.Dir(path)
	captions := make([]string, count)
	for i := 0; i < count; i++ {
		captionPath := filepath.Join(dir, fmt.Sprintf("%d.txt", i+1))
		data, err := os.ReadFile(captionPath)
		if err != nil {
			fmt.Printf("[!] Нет титра для страницы %d (%s), слайд будет без озвучки\n", i+1, captionPath)
			continue
		}
		captions[i] = strings.TrimSpace(string(data))
	}

	return &PDFSource{doc: doc, path: path, captions: captions}, nil
}

func (s *PDFSource) SlideCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) Caption(index int) string {
	return s.captions[index]
}

func (s *PDFSource) RenderSlide(index int) (image.Image, error) {
	// Для параллельного рендеринга открываем отдельный документ,
	// чтобы не блокировать других воркеров
	workerDoc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, pdfRenderDPI)
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
