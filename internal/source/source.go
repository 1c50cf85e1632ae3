package source

import (
	"image"
)

type Source interface {
	SlideCount() int
	Caption(index int) string
	RenderSlide(index int) (image.Image, error)
	Close() error
}
