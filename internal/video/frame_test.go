package video

import (
	"image"
	"image/color"
	"testing"
)

func TestScaleFrameDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	frame := ScaleFrame(src, 1280, 720)

	if frame.Bounds().Dx() != 1280 || frame.Bounds().Dy() != 720 {
		t.Errorf("Expected 1280x720 frame, got %v", frame.Bounds())
	}
	// Standard stride, suitable for piping as rawvideo
	if frame.Stride != 1280*4 {
		t.Errorf("Expected stride %d, got %d", 1280*4, frame.Stride)
	}
}

func TestScaleFrameLetterbox(t *testing.T) {
	// A square source inside a 16:9 frame leaves black bars on the sides
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.White)
		}
	}

	frame := ScaleFrame(src, 1280, 720)

	if r, g, b, _ := frame.At(0, 360).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Error("Expected black padding at the left edge")
	}
	if r, _, _, _ := frame.At(640, 360).RGBA(); r == 0 {
		t.Error("Expected scaled content at the center")
	}
}

func TestScaleFrameEmptySource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 0, 0))
	frame := ScaleFrame(src, 320, 240)
	if frame.Bounds().Dx() != 320 || frame.Bounds().Dy() != 240 {
		t.Errorf("Expected full-size black frame, got %v", frame.Bounds())
	}
}
