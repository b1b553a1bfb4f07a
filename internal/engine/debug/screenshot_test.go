package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFlipRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows: %v", err)
	}
	if top := img.RGBAAt(0, 0); top.B != 255 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}

	if _, err := FlipRows(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FlipRows(nil, 0, 0); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestGenerateFilenameSequence(t *testing.T) {
	sc := NewScreenshotCapture("shots", "orrery")
	fixed := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	sc.now = func() time.Time { return fixed }

	first := sc.GenerateFilename()
	second := sc.GenerateFilename()

	if want := filepath.Join("shots", "orrery_2026-03-01_12-30-45.png"); first != want {
		t.Errorf("first = %q, want %q", first, want)
	}
	if want := filepath.Join("shots", "orrery_2026-03-01_12-30-45_1.png"); second != want {
		t.Errorf("second = %q, want %q", second, want)
	}

	fixed = fixed.Add(time.Second)
	if want := filepath.Join("shots", "orrery_2026-03-01_12-30-46.png"); sc.GenerateFilename() != want {
		t.Errorf("sequence did not reset on a new second")
	}
}

func TestCaptureFromPixelsWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "frame")

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*4), 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Errorf("size = %dx%d, want 4x3", cfg.Width, cfg.Height)
	}
}
