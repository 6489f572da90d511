package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot handles snapshot hot key logic for backends
func TakeSnapshot(frame *video.FrameBuffer, isTestPattern bool, testPatternType int) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "chip8_snapshot"
	if isTestPattern {
		baseName = fmt.Sprintf("chip8_snapshot_%s", display.TestPatternNames[testPatternType%display.TestPatternCount])
	}

	if err := SaveFramePNGToDir(frame, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage renders the frame buffer as a grayscale image, each display
// pixel becoming a scale x scale block.
func FrameImage(frame *video.FrameBuffer, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}

	img := image.NewGray(image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale))
	for i, on := range frame.ToSlice() {
		x := (i % video.FramebufferWidth) * scale
		y := (i / video.FramebufferWidth) * scale
		c := pixelColor(on)

		for dy := 0; dy < scale; dy++ {
			for dx := 0; dx < scale; dx++ {
				img.SetGray(x+dx, y+dy, c)
			}
		}
	}

	return img
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific directory
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	// Determine output directory
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %v", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	if err := SaveFramePNG(frame, filePath); err != nil {
		return err
	}

	slog.Info("Snapshot saved", "path", filePath,
		"size", fmt.Sprintf("%dx%d", video.FramebufferWidth*display.SnapshotScale, video.FramebufferHeight*display.SnapshotScale),
		"format", "PNG")
	return nil
}

// SaveFramePNG writes the frame to path as a PNG upscaled by display.SnapshotScale.
func SaveFramePNG(frame *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %v", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, FrameImage(frame, display.SnapshotScale)); err != nil {
		return fmt.Errorf("failed to encode PNG: %v", err)
	}
	return nil
}

func pixelColor(on bool) color.Gray {
	if on {
		return color.Gray{Y: display.GrayscaleOn}
	}
	return color.Gray{Y: display.GrayscaleOff}
}
