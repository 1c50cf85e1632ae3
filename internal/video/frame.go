package video

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleFrame вписывает изображение в кадр width x height с сохранением
// пропорций, поля заливаются черным. Результат — RGBA со стандартным
// шагом, готовый к передаче в ffmpeg как rawvideo.
func ScaleFrame(img image.Image, width, height int) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))

	srcBounds := img.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()
	if srcW == 0 || srcH == 0 {
		return frame
	}

	scaleX := float64(width) / float64(srcW)
	scaleY := float64(height) / float64(srcH)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	offsetX := (width - dstW) / 2
	offsetY := (height - dstH) / 2

	dstRect := image.Rect(offsetX, offsetY, offsetX+dstW, offsetY+dstH)
	xdraw.CatmullRom.Scale(frame, dstRect, img, srcBounds, xdraw.Over, nil)

	return frame
}
