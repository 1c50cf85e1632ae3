package source

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

// endCardSource добавляет в конец последовательности финальный слайд
// с QR-кодом ссылки. Пустой титр означает слайд без озвучки.
type endCardSource struct {
	Source
	link    string
	caption string
}

// WithEndCard wraps a source, appending a QR end-card slide for link.
func WithEndCard(src Source, link, caption string) Source {
	return &endCardSource{Source: src, link: link, caption: caption}
}

func (s *endCardSource) SlideCount() int {
	return s.Source.SlideCount() + 1
}

func (s *endCardSource) Caption(index int) string {
	if index == s.Source.SlideCount() {
		return s.caption
	}
	return s.Source.Caption(index)
}

func (s *endCardSource) RenderSlide(index int) (image.Image, error) {
	if index != s.Source.SlideCount() {
		return s.Source.RenderSlide(index)
	}

	qr, err := qrcode.New(s.link, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.Image(qrImageSize), nil
}
