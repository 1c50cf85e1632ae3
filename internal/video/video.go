package video

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/timeline"
)

type Encoder interface {
	EncodeSegment(ctx context.Context, img image.Image, videoPath string, params config.SegmentParams, encoderName string, quality int) error
	Concatenate(ctx context.Context, segmentPaths []string, entries []timeline.Entry, audioPath, finalPath, tmpDir string, cfg config.Config) error
}

type FFmpegEncoder struct{}

func (e *FFmpegEncoder) EncodeSegment(
	ctx context.Context,
	img image.Image,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) error {
	// Кадр масштабируется заранее, ffmpeg получает ровно WxH
	frame := ScaleFrame(img, params.Width, params.Height)

	args := e.buildFFmpegArgs(videoPath, params, encoderName, quality)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Передаем один кадр raw-данных, tpad размножит его на всю длительность
	if _, err := stdin.Write(frame.Pix); err != nil {
		stdin.Close()
		return fmt.Errorf("write raw error: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}

	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) []string {
	filter := "tpad=stop_mode=clone:stop=-1"
	if params.Filter != "" {
		filter += "," + params.Filter
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-vf", filter,
		"-t", fmt.Sprintf("%f", params.Duration),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	// Качество в зависимости от энкодера
	switch encoderName {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, entries []timeline.Entry, audioPath, finalPath, tmpDir string, cfg config.Config) error {
	useXfade := cfg.TransitionDuration > 0 && len(segmentPaths) > 1

	if !useXfade {
		return e.concatSimple(ctx, segmentPaths, audioPath, finalPath, tmpDir)
	}

	args := []string{"-y"}
	for _, p := range segmentPaths {
		args = append(args, "-i", p)
	}

	audioIndex := -1
	if audioPath != "" {
		audioIndex = len(segmentPaths)
		args = append(args, "-i", audioPath)
	}

	// Цепочка xfade: offset каждого перехода — абсолютное время старта
	// следующего слайда из таймлайна
	filterGraph := ""
	lastOut := "[0:v]"
	for i := 1; i < len(segmentPaths); i++ {
		nextIn := fmt.Sprintf("[%d:v]", i)
		outName := fmt.Sprintf("[v%d]", i)
		filterGraph += fmt.Sprintf("%s%sxfade=transition=fade:duration=%f:offset=%f%s;",
			lastOut, nextIn, cfg.TransitionDuration, entries[i].VideoStart, outName)
		lastOut = outName
	}
	filterGraph = strings.TrimSuffix(filterGraph, ";")

	args = append(args, "-filter_complex", filterGraph)
	args = append(args, "-map", lastOut)
	if audioIndex != -1 {
		args = append(args, "-map", fmt.Sprintf("%d:a", audioIndex), "-c:a", "copy", "-shortest")
	}

	args = append(args, "-c:v", cfg.VideoEncoder, "-pix_fmt", "yuv420p", "-r", fmt.Sprintf("%d", config.FPS))
	args = append(args, qualityArgs(cfg.VideoEncoder, cfg.Quality)...)
	args = append(args, finalPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg xfade error: %v, output: %s", err, string(out))
	}
	return nil
}

func (e *FFmpegEncoder) concatSimple(ctx context.Context, segmentPaths []string, audioPath, finalPath, tmpDir string) error {
	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(concatFilePath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, _ := filepath.Abs(p)
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	f.Close()

	args := []string{"-y",
		"-f", "concat", "-safe", "0", "-i", concatFilePath,
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath,
			"-map", "0:v", "-map", "1:a",
			"-c:v", "copy", "-c:a", "copy", "-shortest")
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, finalPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
	}
	return nil
}

func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox не везде поддерживает -q:v напрямую, используем битрейт
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
